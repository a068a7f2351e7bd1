// Package contents exposes the admin CRUD endpoints for contents.
package contents

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	contentstore "github.com/dalemusser/eduhub/internal/app/store/contents"
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

// Handler holds dependencies for the content admin endpoints.
type Handler struct {
	Store *contentstore.Store
	Log   *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{Store: contentstore.New(db), Log: logger}
}

// contentBody is the create/update payload. Metadata is the discriminated
// union; validate enforces the per-type required fields.
type contentBody struct {
	Title         string                 `json:"title"`
	Description   models.RichText        `json:"description"`
	Tags          []string               `json:"tags"`
	PublishStatus string                 `json:"publishStatus"`
	Order         int                    `json:"order"`
	Metadata      models.ContentMetadata `json:"metadata"`
}

func (b *contentBody) validate(w http.ResponseWriter) bool {
	if b.Title == "" {
		apiutil.WriteError(w, http.StatusBadRequest, "bad_request", "title is required")
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

	switch b.Metadata.Type {
	case models.ContentTypeVideo:
		if b.Metadata.YouTubeVideoID == "" {
			apiutil.WriteError(w, http.StatusBadRequest, "bad_request", "metadata.youtubeVideoId is required for video content")
			return false
		}
		if b.Metadata.DurationSec <= 0 {
			apiutil.WriteError(w, http.StatusBadRequest, "bad_request", "metadata.durationSec must be a positive number")
			return false
		}
	case models.ContentTypeQuiz:
		if b.Metadata.QuestionsPerAttempt <= 0 {
			apiutil.WriteError(w, http.StatusBadRequest, "bad_request", "metadata.questionsPerAttempt must be a positive number")
			return false
		}
		if b.Metadata.AllowRetry == nil {
			apiutil.WriteError(w, http.StatusBadRequest, "bad_request", "metadata.allowRetry must be an explicit boolean")
			return false
		}
		if b.Metadata.TimeLimitSec < 0 {
			apiutil.WriteError(w, http.StatusBadRequest, "bad_request", "metadata.timeLimitSec must be a positive number")
			return false
		}
	case models.ContentTypeLink:
		u, err := url.Parse(b.Metadata.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			apiutil.WriteError(w, http.StatusBadRequest, "bad_request", "metadata.url must be a valid http or https URL")
			return false
		}
	default:
		apiutil.WriteError(w, http.StatusBadRequest, "bad_request", `metadata.type must be "video", "quiz", or "link"`)
		return false
	}
	return true
}

// ServeList handles GET /api/contents.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	contents, err := h.Store.List(ctx)
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "contents: list failed", err)
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, contents)
}

// ServeGet handles GET /api/contents/{contentID}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	content, err := h.Store.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apiutil.WriteError(w, http.StatusNotFound, "not_found", "content not found")
		return
	}
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "contents: get failed", err)
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, content)
}

// HandleCreate handles POST /api/contents.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var body contentBody
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
			apiutil.WriteServerError(w, h.Log, "contents: max order failed", err)
			return
		}
		order = max + 1
	}

	created, err := h.Store.Create(ctx, models.Content{
		Title:         body.Title,
		Description:   body.Description,
		Tags:          body.Tags,
		PublishStatus: body.PublishStatus,
		Order:         order,
		Metadata:      body.Metadata,
		CreatedBy:     callerID,
	})
	if errors.Is(err, contentstore.ErrDuplicateTitle) {
		apiutil.WriteError(w, http.StatusConflict, "duplicate", "a content with this title already exists")
		return
	}
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "contents: create failed", err)
		return
	}
	apiutil.WriteJSON(w, http.StatusCreated, created)
}

// HandleUpdate handles PUT /api/contents/{contentID}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body contentBody
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
		apiutil.WriteError(w, http.StatusNotFound, "not_found", "content not found")
		return
	}
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "contents: load for update failed", err)
		return
	}

	order := body.Order
	if order == 0 {
		order = current.Order
	}
	err = h.Store.Update(ctx, id, models.Content{
		Title:         body.Title,
		Description:   body.Description,
		Tags:          body.Tags,
		PublishStatus: body.PublishStatus,
		Order:         order,
		Metadata:      body.Metadata,
	})
	if errors.Is(err, contentstore.ErrDuplicateTitle) {
		apiutil.WriteError(w, http.StatusConflict, "duplicate", "a content with this title already exists")
		return
	}
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "contents: update failed", err)
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// HandleDelete handles DELETE /api/contents/{contentID}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	count, err := h.Store.Delete(ctx, id)
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "contents: delete failed", err)
		return
	}
	if count == 0 {
		apiutil.WriteError(w, http.StatusNotFound, "not_found", "content not found")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func pathID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "contentID"))
	if err != nil {
		apiutil.WriteError(w, http.StatusNotFound, "not_found", "content not found")
		return primitive.NilObjectID, false
	}
	return id, true
}
