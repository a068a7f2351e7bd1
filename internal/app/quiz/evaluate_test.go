package quiz_test

import (
	"testing"

	"github.com/dalemusser/eduhub/internal/app/quiz"
	"github.com/dalemusser/eduhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func mcQuestion(correct ...string) *models.Question {
	return &models.Question{
		ID:           primitive.NewObjectID(),
		QuestionType: models.QuestionTypeMultipleChoice,
		Prompt:       models.TextDoc("Pick"),
		Choices: []models.Choice{
			{Key: "choice-1", Label: models.TextDoc("Alpha")},
			{Key: "choice-2", Label: models.TextDoc("Beta")},
			{Key: "choice-3", Label: models.TextDoc("Gamma")},
		},
		CorrectAnswer: correct,
	}
}

func TestEvaluateQuestion_SingleChoice(t *testing.T) {
	q := mcQuestion("choice-2")

	if v := quiz.EvaluateQuestion(q, "choice-2"); !v.IsCorrect {
		t.Error("matching single choice should be correct")
	}
	if v := quiz.EvaluateQuestion(q, "choice-1"); v.IsCorrect {
		t.Error("wrong single choice should be incorrect")
	}
	if v := quiz.EvaluateQuestion(q, nil); v.IsCorrect {
		t.Error("no submission should be incorrect")
	}
}

func TestEvaluateQuestion_MultiSelectSetEquality(t *testing.T) {
	q := mcQuestion("choice-1", "choice-3")

	// Reordered submission: set equality, order-independent.
	if v := quiz.EvaluateQuestion(q, []any{"choice-3", "choice-1"}); !v.IsCorrect {
		t.Error("reordered full set should be correct")
	}
	// Partial submission misses a key.
	if v := quiz.EvaluateQuestion(q, []any{"choice-1"}); v.IsCorrect {
		t.Error("partial set should be incorrect")
	}
	// Extra key breaks cardinality.
	if v := quiz.EvaluateQuestion(q, []any{"choice-1", "choice-2", "choice-3"}); v.IsCorrect {
		t.Error("superset should be incorrect")
	}
	// Repeated keys collapse before comparison.
	if v := quiz.EvaluateQuestion(q, []any{"choice-3", "choice-3", "choice-1"}); !v.IsCorrect {
		t.Error("duplicated keys should collapse to the correct set")
	}
}

func TestEvaluateQuestion_Ordering(t *testing.T) {
	q := &models.Question{
		QuestionType: models.QuestionTypeOrdering,
		Prompt:       models.TextDoc("Order the steps"),
		Choices: []models.Choice{
			{Key: "choice-1", Label: models.TextDoc("One")},
			{Key: "choice-2", Label: models.TextDoc("Two")},
			{Key: "choice-3", Label: models.TextDoc("Three")},
		},
		CorrectAnswer: []string{"choice-2", "choice-1", "choice-3"},
	}

	if v := quiz.EvaluateQuestion(q, []any{"choice-2", "choice-1", "choice-3"}); !v.IsCorrect {
		t.Error("identical sequence should be correct")
	}
	if v := quiz.EvaluateQuestion(q, []any{"choice-1", "choice-2", "choice-3"}); v.IsCorrect {
		t.Error("same elements in a different sequence should be incorrect")
	}
	if v := quiz.EvaluateQuestion(q, []any{"choice-2", "choice-1"}); v.IsCorrect {
		t.Error("shorter sequence should be incorrect")
	}
}

func TestEvaluateQuestion_ShortAnswer(t *testing.T) {
	q := &models.Question{
		QuestionType:  models.QuestionTypeShortAnswer,
		Prompt:        models.TextDoc("Solve"),
		CorrectAnswer: []string{"y = x + 3"},
	}

	// Case and surrounding whitespace are normalized away.
	if v := quiz.EvaluateQuestion(q, " Y = X + 3 "); !v.IsCorrect {
		t.Error("case/whitespace variants should be correct")
	}
	if v := quiz.EvaluateQuestion(q, "y = x + 4"); v.IsCorrect {
		t.Error("different answer should be incorrect")
	}
}

func TestEvaluateQuestion_ShortAnswerEmptyStored(t *testing.T) {
	q := &models.Question{
		QuestionType:  models.QuestionTypeShortAnswer,
		Prompt:        models.TextDoc("Broken"),
		CorrectAnswer: []string{"   "},
	}

	// A blank stored answer can never be matched, even by a blank submission.
	if v := quiz.EvaluateQuestion(q, ""); v.IsCorrect {
		t.Error("blank stored answer must never grade correct")
	}
}

func TestEvaluateQuestion_DisplayLabels(t *testing.T) {
	q := mcQuestion("choice-2")

	v := quiz.EvaluateQuestion(q, "choice-1")
	if len(v.UserAnswerDisplay) != 1 || v.UserAnswerDisplay[0] != "Alpha" {
		t.Errorf("UserAnswerDisplay: got %v, want [Alpha]", v.UserAnswerDisplay)
	}
	if len(v.CorrectAnswerDisplay) != 1 || v.CorrectAnswerDisplay[0] != "Beta" {
		t.Errorf("CorrectAnswerDisplay: got %v, want [Beta]", v.CorrectAnswerDisplay)
	}

	// Unresolvable keys fall back to the raw key string.
	v = quiz.EvaluateQuestion(q, "choice-99")
	if len(v.UserAnswerDisplay) != 1 || v.UserAnswerDisplay[0] != "choice-99" {
		t.Errorf("fallback display: got %v, want [choice-99]", v.UserAnswerDisplay)
	}
}
