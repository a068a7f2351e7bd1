// Package subjects exposes the admin CRUD endpoints for subjects.
package subjects

import (
	"context"
	"errors"
	"net/http"

	subjectstore "github.com/dalemusser/eduhub/internal/app/store/subjects"
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

// Handler holds dependencies for the subject admin endpoints.
type Handler struct {
	Store *subjectstore.Store
	Log   *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{Store: subjectstore.New(db), Log: logger}
}

// subjectBody is the create/update payload.
type subjectBody struct {
	Name          string          `json:"name"`
	Description   models.RichText `json:"description"`
	PublishStatus string          `json:"publishStatus"`
	Order         int             `json:"order"`
}

func (b *subjectBody) validate(w http.ResponseWriter) bool {
	if b.Name == "" {
		apiutil.WriteError(w, http.StatusBadRequest, "bad_request", "name is required")
		return false
	}
	if b.PublishStatus == "" {
		b.PublishStatus = models.PublishPrivate
	}
	if !models.IsValidPublishStatus(b.PublishStatus) {
		apiutil.WriteError(w, http.StatusBadRequest, "bad_request", `publishStatus must be "public" or "private"`)
		return false
	}
	if b.Order < 0 {
		apiutil.WriteError(w, http.StatusBadRequest, "bad_request", "order must be >= 1")
		return false
	}
	return true
}

// ServeList handles GET /api/subjects.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	subjects, err := h.Store.List(ctx)
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "subjects: list failed", err)
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, subjects)
}

// ServeGet handles GET /api/subjects/{subjectID}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	subject, err := h.Store.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apiutil.WriteError(w, http.StatusNotFound, "not_found", "subject not found")
		return
	}
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "subjects: get failed", err)
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, subject)
}

// HandleCreate handles POST /api/subjects.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var body subjectBody
	if !apiutil.DecodeBody(w, r, limits.MaxAdminBodySize, &body) {
		return
	}
	if !body.validate(w) {
		return
	}

	_, _, callerID, _ := authz.UserCtx(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	order := body.Order
	if order == 0 {
		max, err := h.Store.MaxOrder(ctx)
		if err != nil {
			apiutil.WriteServerError(w, h.Log, "subjects: max order failed", err)
			return
		}
		order = max + 1
	}

	created, err := h.Store.Create(ctx, models.Subject{
		Name:          body.Name,
		Description:   body.Description,
		PublishStatus: body.PublishStatus,
		Order:         order,
		CreatedBy:     callerID,
	})
	if errors.Is(err, subjectstore.ErrDuplicateName) {
		apiutil.WriteError(w, http.StatusConflict, "duplicate", "a subject with this name already exists")
		return
	}
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "subjects: create failed", err)
		return
	}
	apiutil.WriteJSON(w, http.StatusCreated, created)
}

// HandleUpdate handles PUT /api/subjects/{subjectID}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body subjectBody
	if !apiutil.DecodeBody(w, r, limits.MaxAdminBodySize, &body) {
		return
	}
	if !body.validate(w) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	current, err := h.Store.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apiutil.WriteError(w, http.StatusNotFound, "not_found", "subject not found")
		return
	}
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "subjects: load for update failed", err)
		return
	}

	order := body.Order
	if order == 0 {
		order = current.Order
	}
	err = h.Store.Update(ctx, id, models.Subject{
		Name:          body.Name,
		Description:   body.Description,
		PublishStatus: body.PublishStatus,
		Order:         order,
	})
	if errors.Is(err, subjectstore.ErrDuplicateName) {
		apiutil.WriteError(w, http.StatusConflict, "duplicate", "a subject with this name already exists")
		return
	}
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "subjects: update failed", err)
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// HandleDelete handles DELETE /api/subjects/{subjectID}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	count, err := h.Store.Delete(ctx, id)
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "subjects: delete failed", err)
		return
	}
	if count == 0 {
		apiutil.WriteError(w, http.StatusNotFound, "not_found", "subject not found")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func pathID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "subjectID"))
	if err != nil {
		apiutil.WriteError(w, http.StatusNotFound, "not_found", "subject not found")
		return primitive.NilObjectID, false
	}
	return id, true
}
