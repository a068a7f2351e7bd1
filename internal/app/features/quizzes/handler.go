// Package quizzes exposes the quiz delivery and grading endpoints.
package quizzes

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/eduhub/internal/app/quiz"
	contentstore "github.com/dalemusser/eduhub/internal/app/store/contents"
	questionstore "github.com/dalemusser/eduhub/internal/app/store/questions"
	"github.com/dalemusser/eduhub/internal/app/system/apiutil"
	"github.com/dalemusser/eduhub/internal/app/system/authz"
	"github.com/dalemusser/eduhub/internal/app/system/limits"
	"github.com/dalemusser/eduhub/internal/app/system/timeouts"
	"github.com/dalemusser/eduhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler holds dependencies for the quiz endpoints.
type Handler struct {
	Engine *quiz.Engine
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	engine := quiz.NewEngine(contentstore.New(db), questionstore.New(db), logger)
	return &Handler{Engine: engine, Log: logger}
}

// attemptQuestion is a question as delivered for answering: no correct
// answer, choices in their per-load shuffled order.
type attemptQuestion struct {
	ID           string          `json:"id"`
	QuestionType string          `json:"questionType"`
	Prompt       models.RichText `json:"prompt"`
	Choices      []models.Choice `json:"choices,omitempty"`
}

// attemptResponse is the payload for starting a quiz attempt. AttemptID
// is a correlation id for client-side state and log lines; grading is
// stateless and does not require it back.
type attemptResponse struct {
	AttemptID           string            `json:"attemptId"`
	ContentID           string            `json:"contentId"`
	Title               string            `json:"title"`
	QuestionsPerAttempt int               `json:"questionsPerAttempt"`
	TimeLimitSec        int               `json:"timeLimitSec,omitempty"`
	AllowRetry          bool              `json:"allowRetry"`
	Questions           []attemptQuestion `json:"questions"`
}

// ServeAttempt handles GET /api/quiz/{contentID}: resolves the quiz,
// samples the question pool, and returns the sampled questions without
// their correct answers.
func (h *Handler) ServeAttempt(w http.ResponseWriter, r *http.Request) {
	contentID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "contentID"))
	if err != nil {
		apiutil.WriteError(w, http.StatusNotFound, "not_found", "quiz not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	def, err := h.Engine.LoadQuizContent(ctx, contentID)
	if h.quizLoadFailed(w, err) {
		return
	}
	// Private quizzes are visible only to content managers.
	if !def.Content.IsPublic() && !authz.CanManageContent(r) {
		apiutil.WriteError(w, http.StatusNotFound, "not_found", "quiz not found")
		return
	}

	sampled := quiz.PickRandomIDs(def.QuestionIDs, def.QuestionsPerAttempt)
	questions, err := h.Engine.LoadQuestionsByIDs(ctx, sampled)
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "quiz: load questions failed", err)
		return
	}

	resp := attemptResponse{
		AttemptID:           uuid.NewString(),
		ContentID:           def.Content.ID.Hex(),
		Title:               def.Content.Title,
		QuestionsPerAttempt: def.QuestionsPerAttempt,
		TimeLimitSec:        def.Content.Metadata.TimeLimitSec,
		AllowRetry:          def.Content.Metadata.AllowRetry == nil || *def.Content.Metadata.AllowRetry,
		Questions:           make([]attemptQuestion, 0, len(questions)),
	}
	for _, q := range questions {
		resp.Questions = append(resp.Questions, attemptQuestion{
			ID:           q.ID.Hex(),
			QuestionType: q.QuestionType,
			Prompt:       q.Prompt,
			Choices:      q.Choices,
		})
	}
	apiutil.WriteJSON(w, http.StatusOK, resp)
}

// gradeBody is the grading submission shape.
type gradeBody struct {
	SelectedQuestionIDs []string       `json:"selectedQuestionIds"`
	Answers             map[string]any `json:"answers"`
}

// HandleGrade handles POST /api/quiz/{contentID}/grade.
func (h *Handler) HandleGrade(w http.ResponseWriter, r *http.Request) {
	contentID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "contentID"))
	if err != nil {
		apiutil.WriteError(w, http.StatusNotFound, "not_found", "quiz not found")
		return
	}

	var body gradeBody
	if !apiutil.DecodeBody(w, r, limits.MaxAdminBodySize, &body) {
		return
	}

	// Malformed selected ids are dropped; the pool intersection inside the
	// engine catches anything that survives but does not belong.
	selected := make([]primitive.ObjectID, 0, len(body.SelectedQuestionIDs))
	for _, raw := range body.SelectedQuestionIDs {
		if id, err := primitive.ObjectIDFromHex(raw); err == nil {
			selected = append(selected, id)
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	def, err := h.Engine.LoadQuizContent(ctx, contentID)
	if h.quizLoadFailed(w, err) {
		return
	}
	if !def.Content.IsPublic() && !authz.CanManageContent(r) {
		apiutil.WriteError(w, http.StatusNotFound, "not_found", "quiz not found")
		return
	}

	result, err := h.Engine.GradeQuiz(ctx, quiz.GradeRequest{
		ContentID:           contentID,
		SelectedQuestionIDs: selected,
		Answers:             body.Answers,
	})
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "quiz: grading failed", err)
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, result)
}

// quizLoadFailed maps quiz-load errors onto responses. A non-quiz content
// id is indistinguishable from a missing one to the caller.
func (h *Handler) quizLoadFailed(w http.ResponseWriter, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, mongo.ErrNoDocuments), errors.Is(err, quiz.ErrNotQuiz):
		apiutil.WriteError(w, http.StatusNotFound, "not_found", "quiz not found")
		return true
	default:
		apiutil.WriteServerError(w, h.Log, "quiz: load content failed", err)
		return true
	}
}
