// Package catalog exposes the public browse endpoints: published subjects,
// their units and lessons, and lesson detail with resolved contents. No
// session is required; anything not published is invisible here.
package catalog

import (
	"context"
	"errors"
	"net/http"

	contentstore "github.com/dalemusser/eduhub/internal/app/store/contents"
	lessonstore "github.com/dalemusser/eduhub/internal/app/store/lessons"
	subjectstore "github.com/dalemusser/eduhub/internal/app/store/subjects"
	unitstore "github.com/dalemusser/eduhub/internal/app/store/units"
	"github.com/dalemusser/eduhub/internal/app/system/apiutil"
	"github.com/dalemusser/eduhub/internal/app/system/timeouts"
	"github.com/dalemusser/eduhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler holds dependencies for the public catalog endpoints.
type Handler struct {
	Subjects *subjectstore.Store
	Units    *unitstore.Store
	Lessons  *lessonstore.Store
	Contents *contentstore.Store
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Subjects: subjectstore.New(db),
		Units:    unitstore.New(db),
		Lessons:  lessonstore.New(db),
		Contents: contentstore.New(db),
		Log:      logger,
	}
}

// lessonDetail is a lesson plus its resolved public contents, in the
// lesson's own ordering. Quiz answer keys never ride along; the content
// metadata for quizzes is reduced to what an attempt needs.
type lessonDetail struct {
	models.Lesson
	Contents []models.Content `json:"contents"`
}

// ServeSubjects handles GET /api/catalog/subjects.
func (h *Handler) ServeSubjects(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	subjects, err := h.Subjects.ListPublic(ctx)
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "catalog: list subjects failed", err)
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, subjects)
}

// ServeUnits handles GET /api/catalog/subjects/{subjectID}/units.
func (h *Handler) ServeUnits(w http.ResponseWriter, r *http.Request) {
	subjectID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "subjectID"))
	if err != nil {
		apiutil.WriteError(w, http.StatusNotFound, "not_found", "subject not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	subj, err := h.Subjects.GetByID(ctx, subjectID)
	if errors.Is(err, mongo.ErrNoDocuments) || (err == nil && subj.PublishStatus != models.PublishPublic) {
		apiutil.WriteError(w, http.StatusNotFound, "not_found", "subject not found")
		return
	}
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "catalog: load subject failed", err)
		return
	}

	units, err := h.Units.ListPublicBySubject(ctx, subjectID)
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "catalog: list units failed", err)
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, units)
}

// ServeLessons handles GET /api/catalog/units/{unitID}/lessons.
func (h *Handler) ServeLessons(w http.ResponseWriter, r *http.Request) {
	unitID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "unitID"))
	if err != nil {
		apiutil.WriteError(w, http.StatusNotFound, "not_found", "unit not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	unit, err := h.Units.GetByID(ctx, unitID)
	if errors.Is(err, mongo.ErrNoDocuments) || (err == nil && unit.PublishStatus != models.PublishPublic) {
		apiutil.WriteError(w, http.StatusNotFound, "not_found", "unit not found")
		return
	}
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "catalog: load unit failed", err)
		return
	}

	lessons, err := h.Lessons.ListPublicByUnit(ctx, unitID)
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "catalog: list lessons failed", err)
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, lessons)
}

// ServeLesson handles GET /api/catalog/lessons/{lessonID}. The response
// embeds the lesson's published contents resolved in contentIds order;
// private or missing references are dropped silently.
func (h *Handler) ServeLesson(w http.ResponseWriter, r *http.Request) {
	lessonID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "lessonID"))
	if err != nil {
		apiutil.WriteError(w, http.StatusNotFound, "not_found", "lesson not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	lesson, err := h.Lessons.GetPublicByID(ctx, lessonID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apiutil.WriteError(w, http.StatusNotFound, "not_found", "lesson not found")
		return
	}
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "catalog: load lesson failed", err)
		return
	}

	byID, err := h.Contents.GetByIDs(ctx, lesson.ContentIDs)
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "catalog: load contents failed", err)
		return
	}
	contents := make([]models.Content, 0, len(lesson.ContentIDs))
	for _, id := range lesson.ContentIDs {
		c, ok := byID[id]
		if !ok || !c.IsPublic() {
			continue
		}
		if c.IsQuiz() {
			// The question pool is server-side detail; attempts go through
			// the quiz endpoints.
			c.Metadata.QuestionIDs = nil
		}
		contents = append(contents, c)
	}

	apiutil.WriteJSON(w, http.StatusOK, lessonDetail{Lesson: *lesson, Contents: contents})
}
