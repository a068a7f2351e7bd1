// Package students exposes the admin CRUD endpoints for the student roster.
package students

import (
	"context"
	"errors"
	"net/http"

	userstore "github.com/dalemusser/eduhub/internal/app/store/users"
	"github.com/dalemusser/eduhub/internal/app/system/apiutil"
	"github.com/dalemusser/eduhub/internal/app/system/limits"
	"github.com/dalemusser/eduhub/internal/app/system/normalize"
	"github.com/dalemusser/eduhub/internal/app/system/paging"
	"github.com/dalemusser/eduhub/internal/app/system/timeouts"
	"github.com/dalemusser/eduhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Handler holds dependencies for the student admin endpoints.
type Handler struct {
	Store *userstore.Store
	Log   *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{Store: userstore.New(db), Log: logger}
}

// studentBody is the create/update payload.
type studentBody struct {
	DisplayName   string `json:"displayName"`
	Email         string `json:"email"`
	StudentNumber string `json:"studentNumber"`
	Notes         string `json:"notes"`
}

func (b *studentBody) validate(w http.ResponseWriter) bool {
	if b.DisplayName == "" {
		apiutil.WriteError(w, http.StatusBadRequest, "bad_request", "displayName is required")
		return false
	}
	if !normalize.IsValidEmail(b.Email) {
		apiutil.WriteError(w, http.StatusBadRequest, "bad_request", "email is not a valid address")
		return false
	}
	return true
}

// rosterPage is the paged roster payload. Cursors are opaque; clients
// pass them back as ?after= or ?before= to move through the list.
type rosterPage struct {
	Students   []models.User `json:"students"`
	Total      int64         `json:"total"`
	HasPrev    bool          `json:"hasPrev"`
	HasNext    bool          `json:"hasNext"`
	PrevCursor string        `json:"prevCursor,omitempty"`
	NextCursor string        `json:"nextCursor,omitempty"`
}

// ServeList handles GET /api/students. The roster pages by keyset on
// email, which is lowercased and unique so the cursor is stable.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	after := query.Get(r, "after")
	before := query.Get(r, "before")

	total, err := h.Store.CountStudents(ctx)
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "students: count failed", err)
		return
	}

	filter := bson.M{}
	findOpts := options.Find()

	cfg := paging.ConfigureKeyset(before, after)
	cfg.ApplyToFind(findOpts, "email")
	if window := cfg.KeysetWindow("email"); window != nil {
		filter["$or"] = window["$or"]
	}

	students, err := h.Store.FindStudents(ctx, filter, findOpts)
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "students: list failed", err)
		return
	}

	page := paging.TrimPage(&students, before, after)
	if before != "" {
		paging.Reverse(students)
	}

	prev, next := paging.BuildCursors(students,
		func(u models.User) string { return u.Email },
		func(u models.User) primitive.ObjectID { return u.ID })

	apiutil.WriteJSON(w, http.StatusOK, rosterPage{
		Students:   students,
		Total:      total,
		HasPrev:    page.HasPrev,
		HasNext:    page.HasNext,
		PrevCursor: prev,
		NextCursor: next,
	})
}

// ServeGet handles GET /api/students/{studentID}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Store.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apiutil.WriteError(w, http.StatusNotFound, "not_found", "student not found")
		return
	}
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "students: get failed", err)
		return
	}
	if user.Role != models.RoleStudent {
		apiutil.WriteError(w, http.StatusNotFound, "not_found", "student not found")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, user)
}

// HandleCreate handles POST /api/students.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var body studentBody
	if !apiutil.DecodeBody(w, r, limits.MaxAdminBodySize, &body) {
		return
	}
	if !body.validate(w) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Store.Create(ctx, models.User{
		DisplayName:   body.DisplayName,
		Email:         body.Email,
		Role:          models.RoleStudent,
		StudentNumber: body.StudentNumber,
		Notes:         body.Notes,
	})
	if errors.Is(err, userstore.ErrDuplicateEmail) {
		apiutil.WriteError(w, http.StatusConflict, "duplicate", "a user with this email already exists")
		return
	}
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "students: create failed", err)
		return
	}
	apiutil.WriteJSON(w, http.StatusCreated, created)
}

// HandleUpdate handles PUT /api/students/{studentID}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body studentBody
	if !apiutil.DecodeBody(w, r, limits.MaxAdminBodySize, &body) {
		return
	}
	if !body.validate(w) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Store.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) || (err == nil && user.Role != models.RoleStudent) {
		apiutil.WriteError(w, http.StatusNotFound, "not_found", "student not found")
		return
	}
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "students: load for update failed", err)
		return
	}

	taken, err := h.Store.EmailExistsForOther(ctx, body.Email, id)
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "students: email check failed", err)
		return
	}
	if taken {
		apiutil.WriteError(w, http.StatusConflict, "duplicate", "a user with this email already exists")
		return
	}

	err = h.Store.UpdateStudent(ctx, id, userstore.StudentUpdate{
		DisplayName:   body.DisplayName,
		Email:         body.Email,
		StudentNumber: body.StudentNumber,
		Notes:         body.Notes,
	})
	if errors.Is(err, userstore.ErrDuplicateEmail) {
		apiutil.WriteError(w, http.StatusConflict, "duplicate", "a user with this email already exists")
		return
	}
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "students: update failed", err)
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// HandleDelete handles DELETE /api/students/{studentID}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	count, err := h.Store.DeleteStudent(ctx, id)
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "students: delete failed", err)
		return
	}
	if count == 0 {
		apiutil.WriteError(w, http.StatusNotFound, "not_found", "student not found")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func pathID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "studentID"))
	if err != nil {
		apiutil.WriteError(w, http.StatusNotFound, "not_found", "student not found")
		return primitive.NilObjectID, false
	}
	return id, true
}
