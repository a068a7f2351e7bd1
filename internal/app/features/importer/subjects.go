package importer

import (
	"context"
	"net/http"

	"github.com/dalemusser/eduhub/internal/app/bulk"
	subjectstore "github.com/dalemusser/eduhub/internal/app/store/subjects"
	"github.com/dalemusser/eduhub/internal/app/system/apiutil"
	"github.com/dalemusser/eduhub/internal/app/system/limits"
	"github.com/dalemusser/eduhub/internal/app/system/timeouts"
)

// ImportSubjects handles POST /api/import/subjects.
func (h *Handler) ImportSubjects(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if !apiutil.DecodeBody(w, r, limits.MaxImportBodySize, &body) {
		return
	}
	user, ok := h.caller(w, r, bodyUserID(body))
	if !ok {
		return
	}

	items, verrs := bulk.DecodeBatch(body, "subjects")
	if len(verrs) > 0 {
		apiutil.WriteValidationFailed(w, verrs)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Batch())
	defer cancel()

	store := subjectstore.New(h.DB)
	nameKeys, err := store.ExistingNameKeys(ctx)
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "importer: load subject names failed", err)
		return
	}
	maxOrder, err := store.MaxOrder(ctx)
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "importer: load subject max order failed", err)
		return
	}

	subjects, verrs := bulk.ValidateSubjects(items, bulk.SubjectRefs{
		ExistingNameKeys: nameKeys,
		MaxOrder:         maxOrder,
	}, user.ID)
	if len(verrs) > 0 {
		apiutil.WriteValidationFailed(w, verrs)
		return
	}

	if err := store.InsertMany(ctx, subjects); err != nil {
		h.insertFailed(w, "subjects", err, subjectstore.ErrDuplicateName)
		return
	}

	h.accepted(w, "subjects", len(subjects), user.ID.Hex())
}
