package importer_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/eduhub/internal/app/bulk"
	"github.com/dalemusser/eduhub/internal/app/features/importer"
	subjectstore "github.com/dalemusser/eduhub/internal/app/store/subjects"
	userstore "github.com/dalemusser/eduhub/internal/app/store/users"
	"github.com/dalemusser/eduhub/internal/app/system/auth"
	"github.com/dalemusser/eduhub/internal/domain/models"
	"github.com/dalemusser/eduhub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func postJSON(t *testing.T, body any) *http.Request {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func asTeacher(t *testing.T, db *mongo.Database, req *http.Request) *http.Request {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()
	teacher := testutil.NewFixtures(t, db).CreateUser(ctx, "Teacher", "teacher@example.com", models.RoleTeacher)
	return auth.WithTestUser(req, &auth.SessionUser{
		ID:    teacher.ID.Hex(),
		Name:  teacher.DisplayName,
		Email: teacher.Email,
		Role:  teacher.Role,
	})
}

func TestImportSubjects_Success(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := importer.NewHandler(db, zap.NewNop())

	req := postJSON(t, map[string]any{
		"subjects": []any{
			map[string]any{"name": "Biology"},
			map[string]any{"name": "Chemistry", "publishStatus": "public"},
		},
	})
	req = asTeacher(t, db, req)
	rec := httptest.NewRecorder()

	h.ImportSubjects(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d (body %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}
	var resp struct {
		Status  string `json:"status"`
		Count   int    `json:"count"`
		BatchID string `json:"batchId"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "success" || resp.Count != 2 {
		t.Errorf("unexpected response: %+v", resp)
	}
	if resp.BatchID == "" {
		t.Error("batchId is empty")
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()
	stored, err := subjectstore.New(db).List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(stored) != 2 {
		t.Errorf("expected 2 stored subjects, got %d", len(stored))
	}
}

func TestImportSubjects_ValidationFailureWritesNothing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := importer.NewHandler(db, zap.NewNop())

	req := postJSON(t, map[string]any{
		"subjects": []any{
			map[string]any{"name": "Math"},
			map[string]any{"name": "math"},
		},
	})
	req = asTeacher(t, db, req)
	rec := httptest.NewRecorder()

	h.ImportSubjects(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
	var resp struct {
		Error   string                 `json:"error"`
		Details []bulk.ValidationError `json:"details"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error != "validation_failed" {
		t.Errorf("error code: got %q", resp.Error)
	}
	if len(resp.Details) != 1 || resp.Details[0].Code != bulk.CodeDuplicate {
		t.Errorf("unexpected details: %v", resp.Details)
	}

	// Fail-closed: nothing persisted.
	ctx, cancel := testutil.TestContext()
	defer cancel()
	stored, err := subjectstore.New(db).List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(stored) != 0 {
		t.Errorf("expected no stored subjects, got %d", len(stored))
	}
}

func TestImportSubjects_BodyUserID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := importer.NewHandler(db, zap.NewNop())

	ctx, cancel := testutil.TestContext()
	defer cancel()
	admin := testutil.NewFixtures(t, db).CreateUser(ctx, "Admin", "admin@example.com", models.RoleAdmin)

	// No session: the caller id rides in the body instead.
	req := postJSON(t, map[string]any{
		"userId":   admin.ID.Hex(),
		"subjects": []any{map[string]any{"name": "Physics"}},
	})
	rec := httptest.NewRecorder()

	h.ImportSubjects(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d (body %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}
}

func TestImportSubjects_StudentForbidden(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := importer.NewHandler(db, zap.NewNop())

	ctx, cancel := testutil.TestContext()
	defer cancel()
	student := testutil.NewFixtures(t, db).CreateUser(ctx, "Student", "student@example.com", models.RoleStudent)

	req := postJSON(t, map[string]any{
		"userId":   student.ID.Hex(),
		"subjects": []any{map[string]any{"name": "Physics"}},
	})
	rec := httptest.NewRecorder()

	h.ImportSubjects(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestImportSubjects_NoCaller(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := importer.NewHandler(db, zap.NewNop())

	req := postJSON(t, map[string]any{
		"subjects": []any{map[string]any{"name": "Physics"}},
	})
	rec := httptest.NewRecorder()

	h.ImportSubjects(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestImportStudentsCSV(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := importer.NewHandler(db, zap.NewNop())

	csv := "displayName,email,studentNumber\n" +
		"Ada Lovelace,ada@example.com,S-1\n" +
		"Alan Turing,alan@example.com,S-2\n"
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(csv))
	req.Header.Set("Content-Type", "text/csv")
	req = asTeacher(t, db, req)
	rec := httptest.NewRecorder()

	h.ImportStudentsCSV(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d (body %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()
	students, err := userstore.New(db).ListStudents(ctx)
	if err != nil {
		t.Fatalf("ListStudents failed: %v", err)
	}
	if len(students) != 2 {
		t.Errorf("expected 2 students, got %d", len(students))
	}
}
