package bulk_test

import (
	"testing"

	"github.com/dalemusser/eduhub/internal/app/bulk"
	"github.com/dalemusser/eduhub/internal/domain/models"
)

func emptyQuestionRefs() bulk.QuestionRefs {
	return bulk.QuestionRefs{ExistingPromptKeys: map[string]bool{}}
}

func choiceObj(key, label string) map[string]any {
	return map[string]any{"key": key, "label": label}
}

func TestValidateQuestions_MultipleChoice(t *testing.T) {
	items := []bulk.RawItem{{
		"questionType":  "multipleChoice",
		"prompt":        "What is 2 + 2?",
		"difficulty":    "easy",
		"choices":       []any{choiceObj("choice-1", "3"), choiceObj("choice-2", "4")},
		"correctAnswer": "choice-2",
	}}

	questions, errs := bulk.ValidateQuestions(items, emptyQuestionRefs(), testCreator)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	q := questions[0]
	if q.QuestionType != models.QuestionTypeMultipleChoice {
		t.Errorf("questionType: got %q", q.QuestionType)
	}
	if len(q.Choices) != 2 {
		t.Errorf("expected 2 choices, got %d", len(q.Choices))
	}
	if len(q.CorrectAnswer) != 1 || q.CorrectAnswer[0] != "choice-2" {
		t.Errorf("correctAnswer: got %v", q.CorrectAnswer)
	}
	if q.PromptKey == "" {
		t.Error("expected PromptKey to be derived from the prompt")
	}
}

func TestValidateQuestions_StructuredPrompt(t *testing.T) {
	items := []bulk.RawItem{{
		"questionType": "shortAnswer",
		"prompt": map[string]any{
			"type": "doc",
			"content": []any{
				map[string]any{"type": "text", "text": "Solve for"},
				map[string]any{"type": "text", "text": "y"},
			},
		},
		"correctAnswer": "y = x + 3",
	}}

	questions, errs := bulk.ValidateQuestions(items, emptyQuestionRefs(), testCreator)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if got := questions[0].Prompt.PlainText(); got != "Solve for y" {
		t.Errorf("flattened prompt: got %q", got)
	}
}

func TestValidateQuestions_BlankPrompt(t *testing.T) {
	items := []bulk.RawItem{{
		"questionType":  "shortAnswer",
		"prompt":        "   ",
		"correctAnswer": "something",
	}}

	_, errs := bulk.ValidateQuestions(items, emptyQuestionRefs(), testCreator)
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(errs), errs)
	}
	if errs[0].Field != "prompt" || errs[0].Code != bulk.CodeRequired {
		t.Errorf("unexpected error: %+v", errs[0])
	}
}

func TestValidateQuestions_MalformedChoicesDropped(t *testing.T) {
	// Non-string key, missing label, and a non-object entry all vanish
	// silently; the surviving choices are kept.
	items := []bulk.RawItem{{
		"questionType": "ordering",
		"prompt":       "Put the steps in order",
		"choices": []any{
			choiceObj("step-1", "First"),
			map[string]any{"key": float64(2), "label": "Bad key"},
			map[string]any{"key": "step-3"},
			"not an object",
			choiceObj("step-4", "Last"),
		},
		"correctAnswer": []any{"step-1", "step-4"},
	}}

	questions, errs := bulk.ValidateQuestions(items, emptyQuestionRefs(), testCreator)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	q := questions[0]
	if len(q.Choices) != 2 {
		t.Fatalf("expected 2 surviving choices, got %d", len(q.Choices))
	}
	if q.Choices[0].Key != "step-1" || q.Choices[1].Key != "step-4" {
		t.Errorf("unexpected choices: %v", q.Choices)
	}
}

func TestValidateQuestions_EmptyChoicesAfterFiltering(t *testing.T) {
	items := []bulk.RawItem{{
		"questionType":  "multipleChoice",
		"prompt":        "No usable choices",
		"choices":       []any{map[string]any{"key": float64(1)}},
		"correctAnswer": "choice-1",
	}}

	_, errs := bulk.ValidateQuestions(items, emptyQuestionRefs(), testCreator)
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(errs), errs)
	}
	if errs[0].Field != "choices" || errs[0].Code != bulk.CodeInvalid {
		t.Errorf("unexpected error: %+v", errs[0])
	}
}

func TestValidateQuestions_PromptDuplicate(t *testing.T) {
	items := []bulk.RawItem{
		{"questionType": "shortAnswer", "prompt": "What is DNA?", "correctAnswer": "deoxyribonucleic acid"},
		{"questionType": "shortAnswer", "prompt": "WHAT IS DNA?", "correctAnswer": "dna"},
	}

	_, errs := bulk.ValidateQuestions(items, emptyQuestionRefs(), testCreator)
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(errs), errs)
	}
	if errs[0].Index != 1 || errs[0].Field != "prompt" || errs[0].Code != bulk.CodeDuplicate {
		t.Errorf("unexpected error: %+v", errs[0])
	}
}

func TestValidateQuestions_InvalidDifficulty(t *testing.T) {
	items := []bulk.RawItem{{
		"questionType":  "shortAnswer",
		"prompt":        "Anything",
		"difficulty":    "impossible",
		"correctAnswer": "answer",
	}}

	_, errs := bulk.ValidateQuestions(items, emptyQuestionRefs(), testCreator)
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(errs), errs)
	}
	if errs[0].Field != "difficulty" || errs[0].Code != bulk.CodeInvalid {
		t.Errorf("unexpected error: %+v", errs[0])
	}
}
