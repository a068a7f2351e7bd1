package authz_test

import (
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/eduhub/internal/app/system/auth"
	"github.com/dalemusser/eduhub/internal/app/system/authz"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// testUserID returns a valid ObjectID hex string for tests.
func testUserID() string {
	return primitive.NewObjectID().Hex()
}

func TestIsAdmin_True(t *testing.T) {
	req := httptest.NewRequest("GET", "/test", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: testUserID(), Role: "admin"})

	if !authz.IsAdmin(req) {
		t.Error("expected IsAdmin to return true for admin user")
	}
}

func TestIsAdmin_False_ForTeacher(t *testing.T) {
	req := httptest.NewRequest("GET", "/test", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: testUserID(), Role: "teacher"})

	if authz.IsAdmin(req) {
		t.Error("expected IsAdmin to return false for teacher user")
	}
}

func TestIsAdmin_False_NoUser(t *testing.T) {
	req := httptest.NewRequest("GET", "/test", nil)
	if authz.IsAdmin(req) {
		t.Error("expected IsAdmin to return false with no user")
	}
}

func TestIsTeacher_True(t *testing.T) {
	req := httptest.NewRequest("GET", "/test", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: testUserID(), Role: "teacher"})

	if !authz.IsTeacher(req) {
		t.Error("expected IsTeacher to return true for teacher user")
	}
}

func TestIsStudent_True(t *testing.T) {
	req := httptest.NewRequest("GET", "/test", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: testUserID(), Role: "student"})

	if !authz.IsStudent(req) {
		t.Error("expected IsStudent to return true for student user")
	}
}

func TestCanManageContent_True_ForTeacher(t *testing.T) {
	req := httptest.NewRequest("GET", "/test", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: testUserID(), Role: "teacher"})

	if !authz.CanManageContent(req) {
		t.Error("expected CanManageContent to return true for teacher")
	}
}

func TestCanManageContent_True_ForAdmin(t *testing.T) {
	req := httptest.NewRequest("GET", "/test", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: testUserID(), Role: "admin"})

	if !authz.CanManageContent(req) {
		t.Error("expected CanManageContent to return true for admin")
	}
}

func TestCanManageContent_False_ForStudent(t *testing.T) {
	req := httptest.NewRequest("GET", "/test", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: testUserID(), Role: "student"})

	if authz.CanManageContent(req) {
		t.Error("expected CanManageContent to return false for student")
	}
}

func TestCanManageContent_False_NoUser(t *testing.T) {
	req := httptest.NewRequest("GET", "/test", nil)
	if authz.CanManageContent(req) {
		t.Error("expected CanManageContent to return false with no user")
	}
}

func TestUserCtx_ValidUser(t *testing.T) {
	id := testUserID()
	req := httptest.NewRequest("GET", "/test", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: id, Name: "Ada", Role: "Teacher"})

	role, name, uid, ok := authz.UserCtx(req)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if role != "teacher" {
		t.Errorf("expected role normalized to lowercase, got %q", role)
	}
	if name != "Ada" {
		t.Errorf("expected name Ada, got %q", name)
	}
	if uid.Hex() != id {
		t.Errorf("expected uid %s, got %s", id, uid.Hex())
	}
}

func TestUserCtx_MalformedID(t *testing.T) {
	req := httptest.NewRequest("GET", "/test", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "not-an-object-id", Role: "admin"})

	role, _, uid, ok := authz.UserCtx(req)
	if ok {
		t.Error("expected ok=false for malformed user ID")
	}
	if role != "visitor" {
		t.Errorf("expected visitor role, got %q", role)
	}
	if !uid.IsZero() {
		t.Error("expected NilObjectID")
	}
}

func TestUserCtx_NoUser(t *testing.T) {
	req := httptest.NewRequest("GET", "/test", nil)

	role, _, _, ok := authz.UserCtx(req)
	if ok {
		t.Error("expected ok=false with no user")
	}
	if role != "visitor" {
		t.Errorf("expected visitor role, got %q", role)
	}
}
