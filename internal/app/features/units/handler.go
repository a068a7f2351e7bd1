// Package units exposes the admin CRUD endpoints for units.
package units

import (
	"context"
	"errors"
	"net/http"

	subjectstore "github.com/dalemusser/eduhub/internal/app/store/subjects"
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

// Handler holds dependencies for the unit admin endpoints.
type Handler struct {
	Store    *unitstore.Store
	Subjects *subjectstore.Store
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Store:    unitstore.New(db),
		Subjects: subjectstore.New(db),
		Log:      logger,
	}
}

// unitBody is the create/update payload.
type unitBody struct {
	SubjectID     string          `json:"subjectId"`
	Name          string          `json:"name"`
	Description   models.RichText `json:"description"`
	PublishStatus string          `json:"publishStatus"`
	Order         int             `json:"order"`
}

func (b *unitBody) validate(w http.ResponseWriter) (primitive.ObjectID, bool) {
	subjectID, err := primitive.ObjectIDFromHex(b.SubjectID)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, "bad_request", "subjectId is not a valid id")
		return primitive.NilObjectID, false
	}
	if b.Name == "" {
		apiutil.WriteError(w, http.StatusBadRequest, "bad_request", "name is required")
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
	return subjectID, true
}

// ServeList handles GET /api/units. An optional ?subjectId= filter scopes
// the listing to one subject.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var (
		units []models.Unit
		err   error
	)
	if raw := r.URL.Query().Get("subjectId"); raw != "" {
		subjectID, parseErr := primitive.ObjectIDFromHex(raw)
		if parseErr != nil {
			apiutil.WriteError(w, http.StatusBadRequest, "bad_request", "subjectId is not a valid id")
			return
		}
		units, err = h.Store.ListBySubject(ctx, subjectID)
	} else {
		units, err = h.Store.List(ctx)
	}
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "units: list failed", err)
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, units)
}

// ServeGet handles GET /api/units/{unitID}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	unit, err := h.Store.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apiutil.WriteError(w, http.StatusNotFound, "not_found", "unit not found")
		return
	}
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "units: get failed", err)
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, unit)
}

// HandleCreate handles POST /api/units.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var body unitBody
	if !apiutil.DecodeBody(w, r, limits.MaxAdminBodySize, &body) {
		return
	}
	subjectID, ok := body.validate(w)
	if !ok {
		return
	}

	_, _, callerID, _ := authz.UserCtx(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Subjects.GetByID(ctx, subjectID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			apiutil.WriteError(w, http.StatusBadRequest, "bad_request", "subjectId does not reference an existing subject")
			return
		}
		apiutil.WriteServerError(w, h.Log, "units: load subject failed", err)
		return
	}

	order := body.Order
	if order == 0 {
		maxOrders, err := h.Store.MaxOrderBySubject(ctx)
		if err != nil {
			apiutil.WriteServerError(w, h.Log, "units: max order failed", err)
			return
		}
		order = maxOrders[subjectID] + 1
	}

	created, err := h.Store.Create(ctx, models.Unit{
		SubjectID:     subjectID,
		Name:          body.Name,
		Description:   body.Description,
		PublishStatus: body.PublishStatus,
		Order:         order,
		CreatedBy:     callerID,
	})
	if errors.Is(err, unitstore.ErrDuplicateName) {
		apiutil.WriteError(w, http.StatusConflict, "duplicate", "a unit with this name already exists in this subject")
		return
	}
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "units: create failed", err)
		return
	}
	apiutil.WriteJSON(w, http.StatusCreated, created)
}

// HandleUpdate handles PUT /api/units/{unitID}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body unitBody
	if !apiutil.DecodeBody(w, r, limits.MaxAdminBodySize, &body) {
		return
	}
	subjectID, ok := body.validate(w)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	current, err := h.Store.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apiutil.WriteError(w, http.StatusNotFound, "not_found", "unit not found")
		return
	}
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "units: load for update failed", err)
		return
	}

	order := body.Order
	if order == 0 {
		order = current.Order
	}
	err = h.Store.Update(ctx, id, models.Unit{
		SubjectID:     subjectID,
		Name:          body.Name,
		Description:   body.Description,
		PublishStatus: body.PublishStatus,
		Order:         order,
	})
	if errors.Is(err, unitstore.ErrDuplicateName) {
		apiutil.WriteError(w, http.StatusConflict, "duplicate", "a unit with this name already exists in this subject")
		return
	}
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "units: update failed", err)
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// HandleDelete handles DELETE /api/units/{unitID}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	count, err := h.Store.Delete(ctx, id)
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "units: delete failed", err)
		return
	}
	if count == 0 {
		apiutil.WriteError(w, http.StatusNotFound, "not_found", "unit not found")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func pathID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "unitID"))
	if err != nil {
		apiutil.WriteError(w, http.StatusNotFound, "not_found", "unit not found")
		return primitive.NilObjectID, false
	}
	return id, true
}
