// Package questions exposes the admin CRUD endpoints for quiz questions.
package questions

import (
	"context"
	"errors"
	"net/http"
	"strings"

	questionstore "github.com/dalemusser/eduhub/internal/app/store/questions"
	"github.com/dalemusser/eduhub/internal/app/system/apiutil"
	"github.com/dalemusser/eduhub/internal/app/system/authz"
	"github.com/dalemusser/eduhub/internal/app/system/limits"
	"github.com/dalemusser/eduhub/internal/app/system/normalize"
	"github.com/dalemusser/eduhub/internal/app/system/timeouts"
	"github.com/dalemusser/eduhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler holds dependencies for the question admin endpoints.
type Handler struct {
	Store *questionstore.Store
	Log   *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{Store: questionstore.New(db), Log: logger}
}

// questionBody is the create/update payload.
type questionBody struct {
	QuestionType  string           `json:"questionType"`
	Prompt        models.RichText  `json:"prompt"`
	Explanation   *models.RichText `json:"explanation"`
	Difficulty    string           `json:"difficulty"`
	Tags          []string         `json:"tags"`
	Order         int              `json:"order"`
	Choices       []models.Choice  `json:"choices"`
	CorrectAnswer []string         `json:"correctAnswer"`
}

func (b *questionBody) validate(w http.ResponseWriter) bool {
	if !models.IsValidQuestionType(b.QuestionType) {
		apiutil.WriteError(w, http.StatusBadRequest, "bad_request", `questionType must be "multipleChoice", "ordering", or "shortAnswer"`)
		return false
	}
	if b.Prompt.IsBlank() {
		apiutil.WriteError(w, http.StatusBadRequest, "bad_request", "prompt is required")
		return false
	}
	if b.Difficulty == "" {
		b.Difficulty = models.DifficultyMedium
	}
	if !models.IsValidDifficulty(b.Difficulty) {
		apiutil.WriteError(w, http.StatusBadRequest, "bad_request", `difficulty must be "easy", "medium", or "hard"`)
		return false
	}
	if b.Order < 0 {
		apiutil.WriteError(w, http.StatusBadRequest, "bad_request", "order must be >= 1")
		return false
	}

	switch b.QuestionType {
	case models.QuestionTypeShortAnswer:
		answer := ""
		if len(b.CorrectAnswer) > 0 {
			answer = strings.TrimSpace(b.CorrectAnswer[0])
		}
		if answer == "" {
			apiutil.WriteError(w, http.StatusBadRequest, "bad_request", "correctAnswer is required")
			return false
		}
		b.CorrectAnswer = []string{answer}
		b.Choices = nil
	default:
		// multipleChoice and ordering both need choices and a key-based answer.
		choices := b.Choices[:0]
		for _, c := range b.Choices {
			if strings.TrimSpace(c.Key) == "" || c.Label.IsBlank() {
				continue
			}
			c.Key = strings.TrimSpace(c.Key)
			choices = append(choices, c)
		}
		if len(choices) == 0 {
			apiutil.WriteError(w, http.StatusBadRequest, "bad_request", "choices must contain at least one entry with a key and a label")
			return false
		}
		b.Choices = choices
		if len(b.CorrectAnswer) == 0 {
			apiutil.WriteError(w, http.StatusBadRequest, "bad_request", "correctAnswer is required")
			return false
		}
	}
	return true
}

func (b *questionBody) toModel() models.Question {
	return models.Question{
		QuestionType:  b.QuestionType,
		Prompt:        b.Prompt,
		PromptKey:     normalize.Key(b.Prompt.PlainText()),
		Explanation:   b.Explanation,
		Difficulty:    b.Difficulty,
		Tags:          b.Tags,
		Order:         b.Order,
		Choices:       b.Choices,
		CorrectAnswer: b.CorrectAnswer,
	}
}

// ServeList handles GET /api/questions.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	questions, err := h.Store.List(ctx)
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "questions: list failed", err)
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, questions)
}

// ServeGet handles GET /api/questions/{questionID}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	question, err := h.Store.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		apiutil.WriteError(w, http.StatusNotFound, "not_found", "question not found")
		return
	}
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "questions: get failed", err)
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, question)
}

// HandleCreate handles POST /api/questions.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var body questionBody
	if !apiutil.DecodeBody(w, r, limits.MaxAdminBodySize, &body) {
		return
	}
	if !body.validate(w) {
		return
	}

	_, _, callerID, _ := authz.UserCtx(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	q := body.toModel()
	if q.Order == 0 {
		max, err := h.Store.MaxOrder(ctx)
		if err != nil {
			apiutil.WriteServerError(w, h.Log, "questions: max order failed", err)
			return
		}
		q.Order = max + 1
	}
	q.CreatedBy = callerID

	created, err := h.Store.Create(ctx, q)
	if errors.Is(err, questionstore.ErrDuplicatePrompt) {
		apiutil.WriteError(w, http.StatusConflict, "duplicate", "a question with this prompt already exists")
		return
	}
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "questions: create failed", err)
		return
	}
	apiutil.WriteJSON(w, http.StatusCreated, created)
}

// HandleUpdate handles PUT /api/questions/{questionID}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body questionBody
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
		apiutil.WriteError(w, http.StatusNotFound, "not_found", "question not found")
		return
	}
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "questions: load for update failed", err)
		return
	}

	q := body.toModel()
	if q.Order == 0 {
		q.Order = current.Order
	}
	err = h.Store.Update(ctx, id, q)
	if errors.Is(err, questionstore.ErrDuplicatePrompt) {
		apiutil.WriteError(w, http.StatusConflict, "duplicate", "a question with this prompt already exists")
		return
	}
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "questions: update failed", err)
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// HandleDelete handles DELETE /api/questions/{questionID}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	count, err := h.Store.Delete(ctx, id)
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "questions: delete failed", err)
		return
	}
	if count == 0 {
		apiutil.WriteError(w, http.StatusNotFound, "not_found", "question not found")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func pathID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "questionID"))
	if err != nil {
		apiutil.WriteError(w, http.StatusNotFound, "not_found", "question not found")
		return primitive.NilObjectID, false
	}
	return id, true
}
