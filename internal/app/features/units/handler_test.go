package units_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/eduhub/internal/app/features/units"
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

func TestHandleCreate_OrdersPerSubject(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := units.NewHandler(db, zap.NewNop())

	ctx, cancel := testutil.TestContext()
	defer cancel()
	f := testutil.NewFixtures(t, db)
	subjA := f.CreateSubject(ctx, "Biology", 1)
	subjB := f.CreateSubject(ctx, "Chemistry", 2)
	f.CreateUnit(ctx, subjA.ID, "Cells", 3)

	// Subject A already has a unit at order 3; subject B is empty.
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, postJSON(t, map[string]any{"subjectId": subjA.ID.Hex(), "name": "Genetics"}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d (body %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}
	var created struct {
		Order int `json:"order"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.Order != 4 {
		t.Errorf("order in subject A: got %d, want 4", created.Order)
	}

	rec = httptest.NewRecorder()
	h.HandleCreate(rec, postJSON(t, map[string]any{"subjectId": subjB.ID.Hex(), "name": "Atoms"}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d (body %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.Order != 1 {
		t.Errorf("order in subject B: got %d, want 1", created.Order)
	}
}

func TestHandleCreate_UnknownSubject(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := units.NewHandler(db, zap.NewNop())

	rec := httptest.NewRecorder()
	h.HandleCreate(rec, postJSON(t, map[string]any{
		"subjectId": "ffffffffffffffffffffffff",
		"name":      "Cells",
	}))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleCreate_DuplicateScopedToSubject(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := units.NewHandler(db, zap.NewNop())

	ctx, cancel := testutil.TestContext()
	defer cancel()
	f := testutil.NewFixtures(t, db)
	subjA := f.CreateSubject(ctx, "Biology", 1)
	subjB := f.CreateSubject(ctx, "Chemistry", 2)
	f.CreateUnit(ctx, subjA.ID, "Introduction", 1)

	// Same name in the same subject conflicts.
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, postJSON(t, map[string]any{"subjectId": subjA.ID.Hex(), "name": "introduction"}))
	if rec.Code != http.StatusConflict {
		t.Fatalf("same-subject status: got %d, want %d", rec.Code, http.StatusConflict)
	}

	// Same name in another subject is fine.
	rec = httptest.NewRecorder()
	h.HandleCreate(rec, postJSON(t, map[string]any{"subjectId": subjB.ID.Hex(), "name": "Introduction"}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("cross-subject status: got %d, want %d (body %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}
}

func TestServeList_FilterBySubject(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := units.NewHandler(db, zap.NewNop())

	ctx, cancel := testutil.TestContext()
	defer cancel()
	f := testutil.NewFixtures(t, db)
	subjA := f.CreateSubject(ctx, "Biology", 1)
	subjB := f.CreateSubject(ctx, "Chemistry", 2)
	f.CreateUnit(ctx, subjA.ID, "Cells", 1)
	f.CreateUnit(ctx, subjA.ID, "Genetics", 2)
	f.CreateUnit(ctx, subjB.ID, "Atoms", 1)

	req := httptest.NewRequest(http.MethodGet, "/?subjectId="+subjA.ID.Hex(), nil)
	rec := httptest.NewRecorder()
	h.ServeList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	var listed []json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(listed) != 2 {
		t.Errorf("expected 2 units for subject A, got %d", len(listed))
	}
}
