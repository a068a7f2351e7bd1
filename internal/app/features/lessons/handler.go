// Package lessons exposes the admin CRUD endpoints for lessons.
package lessons

import (
	"context"
	"errors"
	"net/http"

	contentstore "github.com/dalemusser/eduhub/internal/app/store/contents"
	lessonstore "github.com/dalemusser/eduhub/internal/app/store/lessons"
	unitstore "github.com/dalemusser/eduhub/internal/app/store/units"
	"github.com/dalemusser/eduhub/internal/app/system/apiutil"
	"github.com/dalemusser/eduhub/internal/app/system/authz"
	"github.com/dalemusser/eduhub/internal/app/system/limits"
	"github.com/dalemusser/eduhub/internal/app/system/timeouts"
	"github.com/dalemusser/eduhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler holds dependencies for the lesson admin endpoints.
type Handler struct {
	Store    *lessonstore.Store
	Units    *unitstore.Store
	Contents *contentstore.Store
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Store:    lessonstore.New(db),
		Units:    unitstore.New(db),
		Contents: contentstore.New(db),
		Log:      logger,
	}
}

// lessonBody is the create/update payload. ContentIDs are hex strings and
// every one must reference an existing content document.
type lessonBody struct {
	UnitID        string          `json:"unitId"`
	Title         string          `json:"title"`
	Description   models.RichText `json:"description"`
	ContentIDs    []string        `json:"contentIds"`
	Tags          []string        `json:"tags"`
	PublishStatus string          `json:"publishStatus"`
	Order         int             `json:"order"`
}

func (b *lessonBody) validate(w http.ResponseWriter) (primitive.ObjectID, bool) {
	unitID, err := primitive.ObjectIDFromHex(b.UnitID)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "bad_request", "unitId is not a valid id")
		return primitive.NilObjectID, false
	}
	if b.Title == "" {
		apiutil.WriteError(w, http.StatusBadRequest, "bad_request", "title is required")
		return primitive.NilObjectID, false
	}
	if b.PublishStatus == "" {
		b.PublishStatus = models.PublishPrivate
	}
	if !models.IsValidPublishStatus(b.PublishStatus) {
		apiutil.WriteError(w, http.StatusBadRequest, "bad_request", `publishStatus must be "public" or "private"`)
		return primitive.NilObjectID, false
	}
	if b.Order < 0 {
		apiutil.WriteError(w, http.StatusBadRequest, "bad_request", "order must be >= 1")
		return primitive.NilObjectID, false
	}
	return unitID, true
}

// contentIDs resolves the hex id list against the contents collection.
// Unlike bulk import, the admin API rejects unknown references outright.
func (h *Handler) contentIDs(ctx context.Context, w http.ResponseWriter, raw []string) ([]primitive.ObjectID, bool) {
	ids := make([]primitive.ObjectID, 0, len(raw))
	if len(raw) == 0 {
		return ids, true
	}
	known, err := h.Contents.IDSet(ctx)
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "lessons: load content ids failed", err)
		return nil, false
	}
	for _, hex := range raw {
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil || !known[id] {
			apiutil.WriteError(w, http.StatusBadRequest, "bad_request", "contentIds contains an unknown content reference")
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}

// ServeList handles GET /api/lessons. An optional ?unitId= filter scopes the
// listing to one unit.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var (
		lessons []models.Lesson
		err     error
	)
	if raw := r.URL.Query().Get("unitId"); raw != "" {
		unitID, parseErr := primitive.ObjectIDFromHex(raw)
		if parseErr != nil {
			apiutil.WriteError(w, http.StatusBadRequest, "bad_request", "unitId is not a valid id")
			return
		}
		lessons, err = h.Store.ListByUnit(ctx, unitID)
	} else {
		lessons, err = h.Store.List(ctx)
	}
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "lessons: list failed", err)
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, lessons)
}

// ServeGet handles GET /api/lessons/{lessonID}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	lesson, err := h.Store.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apiutil.WriteError(w, http.StatusNotFound, "not_found", "lesson not found")
		return
	}
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "lessons: get failed", err)
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, lesson)
}

// HandleCreate handles POST /api/lessons.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var body lessonBody
	if !apiutil.DecodeBody(w, r, limits.MaxAdminBodySize, &body) {
		return
	}
	unitID, ok := body.validate(w)
	if !ok {
		return
	}

	_, _, callerID, _ := authz.UserCtx(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Units.GetByID(ctx, unitID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			apiutil.WriteError(w, http.StatusBadRequest, "bad_request", "unitId does not reference an existing unit")
			return
		}
		apiutil.WriteServerError(w, h.Log, "lessons: load unit failed", err)
		return
	}

	contentIDs, ok := h.contentIDs(ctx, w, body.ContentIDs)
	if !ok {
		return
	}

	order := body.Order
	if order == 0 {
		maxOrders, err := h.Store.MaxOrderByUnit(ctx)
		if err != nil {
			apiutil.WriteServerError(w, h.Log, "lessons: max order failed", err)
			return
		}
		order = maxOrders[unitID] + 1
	}

	created, err := h.Store.Create(ctx, models.Lesson{
		UnitID:        unitID,
		Title:         body.Title,
		Description:   body.Description,
		ContentIDs:    contentIDs,
		Tags:          body.Tags,
		PublishStatus: body.PublishStatus,
		Order:         order,
		CreatedBy:     callerID,
	})
	if errors.Is(err, lessonstore.ErrDuplicateTitle) {
		apiutil.WriteError(w, http.StatusConflict, "duplicate", "a lesson with this title already exists in this unit")
		return
	}
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "lessons: create failed", err)
		return
	}
	apiutil.WriteJSON(w, http.StatusCreated, created)
}

// HandleUpdate handles PUT /api/lessons/{lessonID}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body lessonBody
	if !apiutil.DecodeBody(w, r, limits.MaxAdminBodySize, &body) {
		return
	}
	unitID, ok := body.validate(w)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	current, err := h.Store.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apiutil.WriteError(w, http.StatusNotFound, "not_found", "lesson not found")
		return
	}
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "lessons: load for update failed", err)
		return
	}

	contentIDs, ok := h.contentIDs(ctx, w, body.ContentIDs)
	if !ok {
		return
	}

	order := body.Order
	if order == 0 {
		order = current.Order
	}
	err = h.Store.Update(ctx, id, models.Lesson{
		UnitID:        unitID,
		Title:         body.Title,
		Description:   body.Description,
		ContentIDs:    contentIDs,
		Tags:          body.Tags,
		PublishStatus: body.PublishStatus,
		Order:         order,
	})
	if errors.Is(err, lessonstore.ErrDuplicateTitle) {
		apiutil.WriteError(w, http.StatusConflict, "duplicate", "a lesson with this title already exists in this unit")
		return
	}
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "lessons: update failed", err)
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// HandleDelete handles DELETE /api/lessons/{lessonID}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	count, err := h.Store.Delete(ctx, id)
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "lessons: delete failed", err)
		return
	}
	if count == 0 {
		apiutil.WriteError(w, http.StatusNotFound, "not_found", "lesson not found")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func pathID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "lessonID"))
	if err != nil {
		apiutil.WriteError(w, http.StatusNotFound, "not_found", "lesson not found")
		return primitive.NilObjectID, false
	}
	return id, true
}
