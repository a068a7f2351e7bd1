package subjects_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/eduhub/internal/app/features/subjects"
	subjectstore "github.com/dalemusser/eduhub/internal/app/store/subjects"
	"github.com/dalemusser/eduhub/internal/testutil"
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

func TestHandleCreate_AssignsNextOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := subjects.NewHandler(db, zap.NewNop())

	ctx, cancel := testutil.TestContext()
	defer cancel()
	testutil.NewFixtures(t, db).CreateSubject(ctx, "Biology", 4)

	rec := httptest.NewRecorder()
	h.HandleCreate(rec, postJSON(t, map[string]any{"name": "Chemistry"}))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d (body %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}
	var created struct {
		Order         int    `json:"order"`
		PublishStatus string `json:"publishStatus"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.Order != 5 {
		t.Errorf("order: got %d, want 5", created.Order)
	}
	if created.PublishStatus != "private" {
		t.Errorf("publishStatus: got %q, want private", created.PublishStatus)
	}
}

func TestHandleCreate_DuplicateName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := subjects.NewHandler(db, zap.NewNop())

	ctx, cancel := testutil.TestContext()
	defer cancel()
	testutil.NewFixtures(t, db).CreateSubject(ctx, "Biology", 1)

	rec := httptest.NewRecorder()
	h.HandleCreate(rec, postJSON(t, map[string]any{"name": "biology"}))

	if rec.Code != http.StatusConflict {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestHandleCreate_MissingName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := subjects.NewHandler(db, zap.NewNop())

	rec := httptest.NewRecorder()
	h.HandleCreate(rec, postJSON(t, map[string]any{"publishStatus": "public"}))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestServeGet_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := subjects.NewHandler(db, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = testutil.WithChiURLParam(req, "subjectID", "ffffffffffffffffffffffff")
	rec := httptest.NewRecorder()
	h.ServeGet(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestHandleUpdate_KeepsOrderWhenOmitted(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := subjects.NewHandler(db, zap.NewNop())

	ctx, cancel := testutil.TestContext()
	defer cancel()
	subj := testutil.NewFixtures(t, db).CreateSubject(ctx, "Biology", 7)

	req := postJSON(t, map[string]any{"name": "Marine Biology"})
	req = testutil.WithChiURLParam(req, "subjectID", subj.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleUpdate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	stored, err := subjectstore.New(db).GetByID(ctx, subj.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if stored.Name != "Marine Biology" {
		t.Errorf("name: got %q", stored.Name)
	}
	if stored.Order != 7 {
		t.Errorf("order: got %d, want 7", stored.Order)
	}
}

func TestHandleDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := subjects.NewHandler(db, zap.NewNop())

	ctx, cancel := testutil.TestContext()
	defer cancel()
	subj := testutil.NewFixtures(t, db).CreateSubject(ctx, "Biology", 1)

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	req = testutil.WithChiURLParam(req, "subjectID", subj.ID.Hex())
	rec := httptest.NewRecorder()
	h.HandleDelete(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/", nil)
	req = testutil.WithChiURLParam(req, "subjectID", subj.ID.Hex())
	h.HandleDelete(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete status: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}
