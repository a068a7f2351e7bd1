// Package quiz loads quiz contents, samples question pools, and grades
// submitted answers.
//
// Stores are injected behind small interfaces so the whole engine can run
// against in-memory fakes in tests.
package quiz

import (
	"context"
	"errors"

	"github.com/dalemusser/eduhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ErrNotQuiz is returned when the referenced content exists but is not a
// quiz variant.
var ErrNotQuiz = errors.New("content is not a quiz")

// ContentSource fetches content documents.
type ContentSource interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Content, error)
}

// QuestionSource fetches question documents.
type QuestionSource interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Question, error)
}

// Engine wires the quiz flow to its stores.
type Engine struct {
	contents  ContentSource
	questions QuestionSource
	log       *zap.Logger
}

func NewEngine(contents ContentSource, questions QuestionSource, log *zap.Logger) *Engine {
	return &Engine{contents: contents, questions: questions, log: log}
}

// Definition is the resolved quiz metadata an attempt is built from.
type Definition struct {
	Content             *models.Content
	QuestionIDs         []primitive.ObjectID
	QuestionsPerAttempt int
}

// LoadQuizContent resolves a content id into a quiz definition. It fails
// with the store's not-found error when the content does not exist and with
// ErrNotQuiz when it is a different variant. QuestionsPerAttempt falls back
// to the full pool size when the stored value is absent or non-positive.
func (e *Engine) LoadQuizContent(ctx context.Context, id primitive.ObjectID) (*Definition, error) {
	content, err := e.contents.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !content.IsQuiz() {
		return nil, ErrNotQuiz
	}

	per := content.Metadata.QuestionsPerAttempt
	if per <= 0 {
		per = len(content.Metadata.QuestionIDs)
	}
	return &Definition{
		Content:             content,
		QuestionIDs:         content.Metadata.QuestionIDs,
		QuestionsPerAttempt: per,
	}, nil
}

// LoadQuestionsByIDs fetches each question in order. Missing questions are
// skipped silently rather than failing the load. Choice lists of
// multipleChoice and ordering questions are reshuffled per load, so
// on-screen positions vary per render and only choice keys are stable.
func (e *Engine) LoadQuestionsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Question, error) {
	out := make([]models.Question, 0, len(ids))
	for _, id := range ids {
		q, err := e.questions.GetByID(ctx, id)
		if errors.Is(err, mongo.ErrNoDocuments) {
			e.log.Debug("quiz question missing, skipping", zap.String("question_id", id.Hex()))
			continue
		}
		if err != nil {
			return nil, err
		}
		switch q.QuestionType {
		case models.QuestionTypeMultipleChoice, models.QuestionTypeOrdering:
			shuffleChoices(q.Choices)
		}
		out = append(out, *q)
	}
	return out, nil
}
