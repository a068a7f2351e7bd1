package bulk

import (
	"time"

	"github.com/dalemusser/eduhub/internal/app/system/normalize"
	"github.com/dalemusser/eduhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QuestionRefs carries pre-fetched store state for the question validator.
type QuestionRefs struct {
	ExistingPromptKeys map[string]bool
	MaxOrder           int
}

// ValidateQuestions validates and normalizes a question batch. The prompt
// accepts either a plain string or a structured document; its flattened
// plain text is the uniqueness key. Malformed choice entries are dropped
// silently, but a choice-bearing variant whose list is empty after
// filtering is an error.
func ValidateQuestions(items []RawItem, refs QuestionRefs, createdBy primitive.ObjectID) ([]models.Question, []ValidationError) {
	var errs errorList
	alloc := newOrderAlloc(refs.MaxOrder)
	seen := make(map[string]bool, len(items))
	now := time.Now()

	out := make([]models.Question, 0, len(items))
	for i, it := range items {
		qtype, ok := stringValue(it, "questionType")
		switch {
		case !ok || qtype == "":
			errs.required(i, "questionType")
		case !models.IsValidQuestionType(qtype):
			errs.invalid(i, "questionType", `questionType must be "multipleChoice", "ordering", or "shortAnswer"`)
		}

		prompt, ok := richTextValue(it, "prompt")
		if !ok {
			errs.invalid(i, "prompt", "prompt must be a string or a structured document")
		} else if prompt.IsBlank() {
			errs.required(i, "prompt")
		}

		promptText := prompt.PlainText()
		key := normalize.Key(promptText)
		if key != "" {
			switch {
			case seen[key]:
				errs.duplicate(i, "prompt", fmtDuplicate("question", promptText))
			case refs.ExistingPromptKeys[key]:
				errs.duplicate(i, "prompt", fmtDuplicate("question", promptText))
				seen[key] = true
			default:
				seen[key] = true
			}
		}

		var explanation *models.RichText
		if present(it, "explanation") {
			exp, ok := richTextValue(it, "explanation")
			if !ok {
				errs.invalid(i, "explanation", "explanation must be a string or a structured document")
			} else if !exp.IsBlank() {
				explanation = &exp
			}
		}

		difficulty := models.DifficultyMedium
		if present(it, "difficulty") {
			d, ok := stringValue(it, "difficulty")
			if !ok || !models.IsValidDifficulty(d) {
				errs.invalid(i, "difficulty", `difficulty must be "easy", "medium", or "hard"`)
			} else {
				difficulty = d
			}
		}

		choices := choiceList(it["choices"])
		correct := answerKeys(it["correctAnswer"])

		switch qtype {
		case models.QuestionTypeMultipleChoice, models.QuestionTypeOrdering:
			if len(choices) == 0 {
				errs.invalid(i, "choices", "choices must be a non-empty array of {key, label} objects")
			}
			if len(correct) == 0 {
				errs.required(i, "correctAnswer")
			}
		case models.QuestionTypeShortAnswer:
			if len(correct) == 0 {
				errs.required(i, "correctAnswer")
			}
			choices = nil
		}

		order, explicit := orderValue(it, i, &errs)
		if !explicit {
			order = alloc.take()
		}

		out = append(out, models.Question{
			ID:            primitive.NewObjectID(),
			QuestionType:  qtype,
			Prompt:        prompt,
			PromptKey:     key,
			Explanation:   explanation,
			Difficulty:    difficulty,
			Tags:          tagsValue(it, i, &errs),
			Order:         order,
			Choices:       choices,
			CorrectAnswer: correct,
			CreatedBy:     createdBy,
			UpdatedAt:     now,
		})
	}
	return out, errs.errs
}
