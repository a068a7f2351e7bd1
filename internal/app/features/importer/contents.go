package importer

import (
	"context"
	"net/http"

	"github.com/dalemusser/eduhub/internal/app/bulk"
	contentstore "github.com/dalemusser/eduhub/internal/app/store/contents"
	"github.com/dalemusser/eduhub/internal/app/system/apiutil"
	"github.com/dalemusser/eduhub/internal/app/system/limits"
	"github.com/dalemusser/eduhub/internal/app/system/timeouts"
)

// ImportContents handles POST /api/import/contents.
func (h *Handler) ImportContents(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if !apiutil.DecodeBody(w, r, limits.MaxImportBodySize, &body) {
		return
	}
	user, ok := h.caller(w, r, bodyUserID(body))
	if !ok {
		return
	}

	items, verrs := bulk.DecodeBatch(body, "contents")
	if len(verrs) > 0 {
		apiutil.WriteValidationFailed(w, verrs)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Batch())
	defer cancel()

	store := contentstore.New(h.DB)
	titleKeys, err := store.ExistingTitleKeys(ctx)
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "importer: load content titles failed", err)
		return
	}
	maxOrder, err := store.MaxOrder(ctx)
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "importer: load content max order failed", err)
		return
	}

	contents, verrs := bulk.ValidateContents(items, bulk.ContentRefs{
		ExistingTitleKeys: titleKeys,
		MaxOrder:          maxOrder,
	}, user.ID)
	if len(verrs) > 0 {
		apiutil.WriteValidationFailed(w, verrs)
		return
	}

	if err := store.InsertMany(ctx, contents); err != nil {
		h.insertFailed(w, "contents", err, contentstore.ErrDuplicateTitle)
		return
	}

	h.accepted(w, "contents", len(contents), user.ID.Hex())
}
