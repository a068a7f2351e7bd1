package quiz

import (
	"context"
	"math"

	"github.com/dalemusser/eduhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GradeRequest is a grading submission: the quiz content, the question ids
// the client claims were sampled for the attempt, and the answer per
// question id (hex).
type GradeRequest struct {
	ContentID           primitive.ObjectID
	SelectedQuestionIDs []primitive.ObjectID
	Answers             map[string]any
}

// GradeSummary aggregates an attempt. Accuracy is a whole percentage,
// rounded, and 0 when no questions were evaluated.
type GradeSummary struct {
	Total    int `json:"total"`
	Correct  int `json:"correct"`
	Accuracy int `json:"accuracy"`
}

// GradedQuestion is the per-question grading outcome returned to the
// results view.
type GradedQuestion struct {
	ID            string           `json:"id"`
	QuestionType  string           `json:"questionType"`
	Prompt        models.RichText  `json:"prompt"`
	Choices       []models.Choice  `json:"choices,omitempty"`
	CorrectAnswer []string         `json:"correctAnswer"`
	UserAnswer    []string         `json:"userAnswer"`
	Explanation   *models.RichText `json:"explanation,omitempty"`
	IsCorrect     bool             `json:"isCorrect"`
}

// GradeResult is the terminal artifact of a grading call.
type GradeResult struct {
	Summary   GradeSummary     `json:"summary"`
	Questions []GradedQuestion `json:"questions"`
}

// GradeQuiz evaluates a submitted attempt. The client-supplied question ids
// are not trusted as ground truth: they are filtered down to the
// intersection with the pool recorded in storage before anything is graded,
// so a tampered sample cannot pull in questions outside the quiz. Answers
// are looked up per question; questions the answer map does not cover are
// graded as submitted-empty, not skipped.
func (e *Engine) GradeQuiz(ctx context.Context, req GradeRequest) (*GradeResult, error) {
	def, err := e.LoadQuizContent(ctx, req.ContentID)
	if err != nil {
		return nil, err
	}

	pool := make(map[primitive.ObjectID]bool, len(def.QuestionIDs))
	for _, id := range def.QuestionIDs {
		pool[id] = true
	}
	// The intersection is a set: deleting on first hit drops repeats of
	// the same id, so a question cannot be graded more than once.
	selected := make([]primitive.ObjectID, 0, len(req.SelectedQuestionIDs))
	for _, id := range req.SelectedQuestionIDs {
		if pool[id] {
			delete(pool, id)
			selected = append(selected, id)
		}
	}

	questions, err := e.LoadQuestionsByIDs(ctx, selected)
	if err != nil {
		return nil, err
	}

	result := &GradeResult{Questions: make([]GradedQuestion, 0, len(questions))}
	for i := range questions {
		q := &questions[i]
		verdict := EvaluateQuestion(q, req.Answers[q.ID.Hex()])

		result.Summary.Total++
		if verdict.IsCorrect {
			result.Summary.Correct++
		}
		result.Questions = append(result.Questions, GradedQuestion{
			ID:            q.ID.Hex(),
			QuestionType:  q.QuestionType,
			Prompt:        q.Prompt,
			Choices:       q.Choices,
			CorrectAnswer: verdict.CorrectAnswerDisplay,
			UserAnswer:    verdict.UserAnswerDisplay,
			Explanation:   q.Explanation,
			IsCorrect:     verdict.IsCorrect,
		})
	}

	if result.Summary.Total > 0 {
		result.Summary.Accuracy = int(math.Round(100 * float64(result.Summary.Correct) / float64(result.Summary.Total)))
	}
	return result, nil
}
