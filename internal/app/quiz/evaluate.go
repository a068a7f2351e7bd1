package quiz

import (
	"strings"

	"github.com/dalemusser/eduhub/internal/app/system/normalize"
	"github.com/dalemusser/eduhub/internal/domain/models"
)

// Verdict is the outcome of evaluating one question against a submission.
// The display fields map choice keys back to human-readable labels; for
// shortAnswer they carry the raw strings.
type Verdict struct {
	IsCorrect            bool
	UserAnswerDisplay    []string
	CorrectAnswerDisplay []string
}

// EvaluateQuestion grades one submitted answer against the question's
// stored correct answer. submitted is the loosely typed value
// from the request body: a string, or an array of strings.
//
// Evaluation is keyed entirely by choice keys, never by on-screen position,
// since choice order is reshuffled on every load.
func EvaluateQuestion(q *models.Question, submitted any) Verdict {
	switch q.QuestionType {
	case models.QuestionTypeMultipleChoice:
		return evaluateMultipleChoice(q, submitted)
	case models.QuestionTypeOrdering:
		return evaluateOrdering(q, submitted)
	case models.QuestionTypeShortAnswer:
		return evaluateShortAnswer(q, submitted)
	default:
		// The variant set is closed; imports reject anything else.
		return Verdict{}
	}
}

func evaluateMultipleChoice(q *models.Question, submitted any) Verdict {
	correct := dedupe(submittedKeys(q.CorrectAnswer))
	answer := dedupe(answerToKeys(submitted))

	var isCorrect bool
	if len(correct) > 1 {
		// Multi-select: set equality, order-independent.
		isCorrect = sameKeySet(correct, answer)
	} else if len(correct) == 1 {
		// Radio semantics: only the first submitted key is meaningful.
		isCorrect = len(answer) > 0 && answer[0] == correct[0]
	}

	return Verdict{
		IsCorrect:            isCorrect,
		UserAnswerDisplay:    labels(q, answer),
		CorrectAnswerDisplay: labels(q, correct),
	}
}

func evaluateOrdering(q *models.Question, submitted any) Verdict {
	correct := submittedKeys(q.CorrectAnswer)
	answer := answerToKeys(submitted)

	// Strict sequence equality: same length, same key at every position.
	isCorrect := len(answer) == len(correct) && len(correct) > 0
	if isCorrect {
		for i := range correct {
			if answer[i] != correct[i] {
				isCorrect = false
				break
			}
		}
	}

	return Verdict{
		IsCorrect:            isCorrect,
		UserAnswerDisplay:    labels(q, answer),
		CorrectAnswerDisplay: labels(q, correct),
	}
}

func evaluateShortAnswer(q *models.Question, submitted any) Verdict {
	var stored string
	if len(q.CorrectAnswer) > 0 {
		stored = q.CorrectAnswer[0]
	}

	var raw string
	switch v := submitted.(type) {
	case string:
		raw = v
	case []any:
		if len(v) > 0 {
			raw, _ = v[0].(string)
		}
	case []string:
		if len(v) > 0 {
			raw = v[0]
		}
	}

	want := normalize.Answer(stored)
	got := normalize.Answer(raw)

	return Verdict{
		IsCorrect:            want != "" && want == got,
		UserAnswerDisplay:    []string{strings.TrimSpace(raw)},
		CorrectAnswerDisplay: []string{strings.TrimSpace(stored)},
	}
}

// answerToKeys normalizes a raw submitted answer into trimmed non-empty
// keys. A plain string becomes a one-element list.
func answerToKeys(v any) []string {
	switch val := v.(type) {
	case string:
		return submittedKeys([]string{val})
	case []string:
		return submittedKeys(val)
	case []any:
		keys := make([]string, 0, len(val))
		for _, e := range val {
			if s, ok := e.(string); ok {
				keys = append(keys, s)
			}
		}
		return submittedKeys(keys)
	default:
		return nil
	}
}

func submittedKeys(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func dedupe(keys []string) []string {
	seen := make(map[string]bool, len(keys))
	out := keys[:0]
	for _, k := range keys {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}

func sameKeySet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]bool, len(a))
	for _, k := range a {
		set[k] = true
	}
	for _, k := range b {
		if !set[k] {
			return false
		}
	}
	return true
}

func labels(q *models.Question, keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, q.ChoiceLabel(k))
	}
	return out
}
