package importer

import (
	"context"
	"net/http"

	"github.com/dalemusser/eduhub/internal/app/bulk"
	"github.com/dalemusser/eduhub/internal/app/features/importer/csvutil"
	userstore "github.com/dalemusser/eduhub/internal/app/store/users"
	"github.com/dalemusser/eduhub/internal/app/system/apiutil"
	"github.com/dalemusser/eduhub/internal/app/system/limits"
	"github.com/dalemusser/eduhub/internal/app/system/timeouts"
)

// ImportStudents handles POST /api/import/students.
func (h *Handler) ImportStudents(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if !apiutil.DecodeBody(w, r, limits.MaxImportBodySize, &body) {
		return
	}
	user, ok := h.caller(w, r, bodyUserID(body))
	if !ok {
		return
	}

	items, verrs := bulk.DecodeBatch(body, "students")
	if len(verrs) > 0 {
		apiutil.WriteValidationFailed(w, verrs)
		return
	}

	h.importStudentItems(w, r, items, user.ID.Hex())
}

// ImportStudentsCSV handles POST /api/import/students/csv. The body is a
// raw CSV roster; the importing user comes from the session or the userId
// query parameter.
func (h *Handler) ImportStudentsCSV(w http.ResponseWriter, r *http.Request) {
	user, ok := h.caller(w, r, r.URL.Query().Get("userId"))
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxImportBodySize)
	items, err := csvutil.ParseStudentsCSV(r.Body)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "bad_request", "CSV file could not be parsed: "+err.Error())
		return
	}
	if len(items) > limits.MaxBatchItems {
		apiutil.WriteValidationFailed(w, []bulk.ValidationError{{
			Index: 0, Field: "students", Code: bulk.CodeLimitExceeded,
			Message: "batch exceeds the item limit",
		}})
		return
	}

	h.importStudentItems(w, r, items, user.ID.Hex())
}

func (h *Handler) importStudentItems(w http.ResponseWriter, r *http.Request, items []bulk.RawItem, callerID string) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Batch())
	defer cancel()

	store := userstore.New(h.DB)
	emails, err := store.ExistingEmails(ctx)
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "importer: load emails failed", err)
		return
	}

	students, verrs := bulk.ValidateStudents(items, bulk.StudentRefs{ExistingEmails: emails})
	if len(verrs) > 0 {
		apiutil.WriteValidationFailed(w, verrs)
		return
	}

	if err := store.InsertMany(ctx, students); err != nil {
		h.insertFailed(w, "students", err, userstore.ErrDuplicateEmail)
		return
	}

	h.accepted(w, "students", len(students), callerID)
}
