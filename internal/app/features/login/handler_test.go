package login_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/eduhub/internal/app/features/login"
	"github.com/dalemusser/eduhub/internal/app/system/auth"
	"github.com/dalemusser/eduhub/internal/domain/models"
	"github.com/dalemusser/eduhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newSessionManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	sm, err := auth.NewSessionManager("0123456789abcdef0123456789abcdef", "eduhub_test", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	return sm
}

func createTeacherWithPassword(t *testing.T, db *mongo.Database, email, password string) models.User {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := testutil.NewFixtures(t, db).CreateUser(ctx, "Teacher", email, models.RoleTeacher)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt failed: %v", err)
	}
	if _, err := db.Collection("users").UpdateByID(ctx, u.ID,
		bson.M{"$set": bson.M{"passwordHash": string(hash)}}); err != nil {
		t.Fatalf("set password hash: %v", err)
	}
	return u
}

func postLogin(t *testing.T, h *login.Handler, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	buf, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.HandleLogin(rec, req)
	return rec
}

func TestHandleLogin_Success(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := login.NewHandler(db, newSessionManager(t), zap.NewNop())
	createTeacherWithPassword(t, db, "teacher@example.com", "correct horse")

	rec := postLogin(t, h, "Teacher@Example.com", "correct horse")

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Errorf("expected a session cookie")
	}
	if bytes.Contains(rec.Body.Bytes(), []byte("passwordHash")) {
		t.Errorf("response leaked the password hash")
	}
}

func TestHandleLogin_WrongPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := login.NewHandler(db, newSessionManager(t), zap.NewNop())
	createTeacherWithPassword(t, db, "teacher@example.com", "correct horse")

	rec := postLogin(t, h, "teacher@example.com", "battery staple")

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestHandleLogin_UnknownEmailSameResponse(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := login.NewHandler(db, newSessionManager(t), zap.NewNop())
	createTeacherWithPassword(t, db, "teacher@example.com", "correct horse")

	wrongPass := postLogin(t, h, "teacher@example.com", "nope")
	unknown := postLogin(t, h, "nobody@example.com", "nope")

	if wrongPass.Code != unknown.Code {
		t.Errorf("responses differ: %d vs %d", wrongPass.Code, unknown.Code)
	}
	if wrongPass.Body.String() != unknown.Body.String() {
		t.Errorf("bodies differ: %q vs %q", wrongPass.Body.String(), unknown.Body.String())
	}
}

func TestHandleLogin_StudentRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := login.NewHandler(db, newSessionManager(t), zap.NewNop())

	ctx, cancel := testutil.TestContext()
	defer cancel()
	student := testutil.NewFixtures(t, db).CreateUser(ctx, "Ada", "ada@example.com", models.RoleStudent)
	hash, _ := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	if _, err := db.Collection("users").UpdateByID(ctx, student.ID,
		bson.M{"$set": bson.M{"passwordHash": string(hash)}}); err != nil {
		t.Fatalf("set password hash: %v", err)
	}

	rec := postLogin(t, h, "ada@example.com", "pw")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestHandleLogin_RateLimited(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := login.NewHandler(db, newSessionManager(t), zap.NewNop())
	createTeacherWithPassword(t, db, "teacher@example.com", "correct horse")

	var last *httptest.ResponseRecorder
	for i := 0; i < 11; i++ {
		last = postLogin(t, h, "teacher@example.com", "wrong")
	}
	if last.Code != http.StatusTooManyRequests {
		t.Fatalf("status after 11 attempts: got %d, want %d", last.Code, http.StatusTooManyRequests)
	}
}
