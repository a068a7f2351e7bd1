package importer

import (
	"context"
	"net/http"

	"github.com/dalemusser/eduhub/internal/app/bulk"
	contentstore "github.com/dalemusser/eduhub/internal/app/store/contents"
	lessonstore "github.com/dalemusser/eduhub/internal/app/store/lessons"
	unitstore "github.com/dalemusser/eduhub/internal/app/store/units"
	"github.com/dalemusser/eduhub/internal/app/system/apiutil"
	"github.com/dalemusser/eduhub/internal/app/system/limits"
	"github.com/dalemusser/eduhub/internal/app/system/timeouts"
)

// ImportLessons handles POST /api/import/lessons.
func (h *Handler) ImportLessons(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if !apiutil.DecodeBody(w, r, limits.MaxImportBodySize, &body) {
		return
	}
	user, ok := h.caller(w, r, bodyUserID(body))
	if !ok {
		return
	}

	items, verrs := bulk.DecodeBatch(body, "lessons")
	if len(verrs) > 0 {
		apiutil.WriteValidationFailed(w, verrs)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Batch())
	defer cancel()

	store := lessonstore.New(h.DB)
	unitIDs, err := unitstore.New(h.DB).IDSet(ctx)
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "importer: load unit ids failed", err)
		return
	}
	contentIDs, err := contentstore.New(h.DB).IDSet(ctx)
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "importer: load content ids failed", err)
		return
	}
	titleKeys, err := store.ExistingTitleKeysByUnit(ctx)
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "importer: load lesson titles failed", err)
		return
	}
	maxOrders, err := store.MaxOrderByUnit(ctx)
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "importer: load lesson max orders failed", err)
		return
	}

	lessons, verrs := bulk.ValidateLessons(items, bulk.LessonRefs{
		UnitIDs:         unitIDs,
		TitleKeysByUnit: titleKeys,
		MaxOrderByUnit:  maxOrders,
		ContentIDs:      contentIDs,
	}, user.ID)
	if len(verrs) > 0 {
		apiutil.WriteValidationFailed(w, verrs)
		return
	}

	if err := store.InsertMany(ctx, lessons); err != nil {
		h.insertFailed(w, "lessons", err, lessonstore.ErrDuplicateTitle)
		return
	}

	h.accepted(w, "lessons", len(lessons), user.ID.Hex())
}
