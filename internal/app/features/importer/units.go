package importer

import (
	"context"
	"net/http"

	"github.com/dalemusser/eduhub/internal/app/bulk"
	subjectstore "github.com/dalemusser/eduhub/internal/app/store/subjects"
	unitstore "github.com/dalemusser/eduhub/internal/app/store/units"
	"github.com/dalemusser/eduhub/internal/app/system/apiutil"
	"github.com/dalemusser/eduhub/internal/app/system/limits"
	"github.com/dalemusser/eduhub/internal/app/system/timeouts"
)

// ImportUnits handles POST /api/import/units. Parent subjects, per-subject
// name sets, and per-subject max orders are fetched once per batch, not per
// item.
func (h *Handler) ImportUnits(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if !apiutil.DecodeBody(w, r, limits.MaxImportBodySize, &body) {
		return
	}
	user, ok := h.caller(w, r, bodyUserID(body))
	if !ok {
		return
	}

	items, verrs := bulk.DecodeBatch(body, "units")
	if len(verrs) > 0 {
		apiutil.WriteValidationFailed(w, verrs)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Batch())
	defer cancel()

	store := unitstore.New(h.DB)
	subjectIDs, err := subjectstore.New(h.DB).IDSet(ctx)
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "importer: load subject ids failed", err)
		return
	}
	nameKeys, err := store.ExistingNameKeysBySubject(ctx)
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "importer: load unit names failed", err)
		return
	}
	maxOrders, err := store.MaxOrderBySubject(ctx)
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "importer: load unit max orders failed", err)
		return
	}

	units, verrs := bulk.ValidateUnits(items, bulk.UnitRefs{
		SubjectIDs:        subjectIDs,
		NameKeysBySubject: nameKeys,
		MaxOrderBySubject: maxOrders,
	}, user.ID)
	if len(verrs) > 0 {
		apiutil.WriteValidationFailed(w, verrs)
		return
	}

	if err := store.InsertMany(ctx, units); err != nil {
		h.insertFailed(w, "units", err, unitstore.ErrDuplicateName)
		return
	}

	h.accepted(w, "units", len(units), user.ID.Hex())
}
