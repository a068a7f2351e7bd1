// internal/domain/models/question.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Canonical question type identifiers. The set is closed: validation rejects
// anything else at import time, and the grader matches exhaustively over
// these three variants.
const (
	QuestionTypeMultipleChoice = "multipleChoice"
	QuestionTypeOrdering       = "ordering"
	QuestionTypeShortAnswer    = "shortAnswer"
)

// QuestionTypes is the full set of allowed question type identifiers.
var QuestionTypes = []string{
	QuestionTypeMultipleChoice,
	QuestionTypeOrdering,
	QuestionTypeShortAnswer,
}

// IsValidQuestionType reports whether t is an allowed question type.
func IsValidQuestionType(t string) bool {
	for _, qt := range QuestionTypes {
		if t == qt {
			return true
		}
	}
	return false
}

// Difficulty values.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Difficulties is the full set of allowed difficulty values.
var Difficulties = []string{DifficultyEasy, DifficultyMedium, DifficultyHard}

// IsValidDifficulty reports whether d is an allowed difficulty.
func IsValidDifficulty(d string) bool {
	for _, v := range Difficulties {
		if d == v {
			return true
		}
	}
	return false
}

// Choice is one selectable option of a multipleChoice or ordering question.
// Key is the stable identifier answers refer to; Label is what is shown.
// Choice positions on screen are reshuffled per load, so only Key is
// meaningful for grading.
type Choice struct {
	Key   string   `bson:"key" json:"key"`
	Label RichText `bson:"label" json:"label"`
}

// Question is a quiz question document. Variant behavior is discriminated by
// QuestionType:
//
//   - multipleChoice: Choices non-empty; CorrectAnswer holds one key
//     (radio semantics) or several (multi-select, graded as set equality).
//   - ordering: Choices non-empty; CorrectAnswer is the full key sequence
//     in the correct order (graded positionally).
//   - shortAnswer: no choices; CorrectAnswer holds a single free-text
//     string, compared case-insensitively after trimming.
//
// PromptKey is the folded plain text of the prompt, the case-insensitive
// uniqueness key for the collection.
type Question struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	QuestionType string             `bson:"questionType" json:"questionType"`
	Prompt       RichText           `bson:"prompt" json:"prompt"`
	PromptKey    string             `bson:"promptKey" json:"-"`
	Explanation  *RichText          `bson:"explanation,omitempty" json:"explanation,omitempty"`
	Difficulty   string             `bson:"difficulty" json:"difficulty"`
	Tags         []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	Order        int                `bson:"order" json:"order"`

	Choices       []Choice `bson:"choices,omitempty" json:"choices,omitempty"`
	CorrectAnswer []string `bson:"correctAnswer" json:"correctAnswer"`

	CreatedBy primitive.ObjectID `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ChoiceLabel returns the plain-text label for a choice key, falling back to
// the raw key when the key does not resolve to a known choice.
func (q *Question) ChoiceLabel(key string) string {
	for _, c := range q.Choices {
		if c.Key == key {
			if label := c.Label.PlainText(); label != "" {
				return label
			}
			return key
		}
	}
	return key
}
