package quiz_test

import (
	"context"
	"testing"

	"github.com/dalemusser/eduhub/internal/app/quiz"
	"github.com/dalemusser/eduhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// In-memory store fakes.

type fakeContents map[primitive.ObjectID]models.Content

func (f fakeContents) GetByID(_ context.Context, id primitive.ObjectID) (*models.Content, error) {
	c, ok := f[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &c, nil
}

type fakeQuestions map[primitive.ObjectID]models.Question

func (f fakeQuestions) GetByID(_ context.Context, id primitive.ObjectID) (*models.Question, error) {
	q, ok := f[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	// Copy choice slices so per-load reshuffles don't alias the stored doc.
	q.Choices = append([]models.Choice(nil), q.Choices...)
	return &q, nil
}

func quizContent(id primitive.ObjectID, questionIDs []primitive.ObjectID, perAttempt int) models.Content {
	allowRetry := true
	return models.Content{
		ID:            id,
		Title:         "Quiz",
		PublishStatus: models.PublishPublic,
		Metadata: models.ContentMetadata{
			Type:                models.ContentTypeQuiz,
			QuestionIDs:         questionIDs,
			QuestionsPerAttempt: perAttempt,
			AllowRetry:          &allowRetry,
		},
	}
}

func newTestEngine(contents fakeContents, questions fakeQuestions) *quiz.Engine {
	return quiz.NewEngine(contents, questions, zap.NewNop())
}

func TestLoadQuizContent_DefaultsPerAttempt(t *testing.T) {
	contentID := primitive.NewObjectID()
	pool := []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()}
	contents := fakeContents{contentID: quizContent(contentID, pool, 0)}
	e := newTestEngine(contents, fakeQuestions{})

	def, err := e.LoadQuizContent(context.Background(), contentID)
	if err != nil {
		t.Fatalf("LoadQuizContent failed: %v", err)
	}
	if def.QuestionsPerAttempt != len(pool) {
		t.Errorf("QuestionsPerAttempt: got %d, want %d", def.QuestionsPerAttempt, len(pool))
	}
}

func TestLoadQuizContent_NotAQuiz(t *testing.T) {
	contentID := primitive.NewObjectID()
	contents := fakeContents{contentID: {
		ID:       contentID,
		Title:    "Video",
		Metadata: models.ContentMetadata{Type: models.ContentTypeVideo, YouTubeVideoID: "abc", DurationSec: 10},
	}}
	e := newTestEngine(contents, fakeQuestions{})

	_, err := e.LoadQuizContent(context.Background(), contentID)
	if err != quiz.ErrNotQuiz {
		t.Errorf("expected ErrNotQuiz, got %v", err)
	}
}

func TestLoadQuizContent_NotFound(t *testing.T) {
	e := newTestEngine(fakeContents{}, fakeQuestions{})

	_, err := e.LoadQuizContent(context.Background(), primitive.NewObjectID())
	if err != mongo.ErrNoDocuments {
		t.Errorf("expected mongo.ErrNoDocuments, got %v", err)
	}
}

func TestPickRandomIDs_Sampling(t *testing.T) {
	ids := make([]primitive.ObjectID, 10)
	original := make(map[primitive.ObjectID]bool, len(ids))
	for i := range ids {
		ids[i] = primitive.NewObjectID()
		original[ids[i]] = true
	}

	for trial := 0; trial < 50; trial++ {
		picked := quiz.PickRandomIDs(ids, 4)
		if len(picked) != 4 {
			t.Fatalf("expected 4 ids, got %d", len(picked))
		}
		seen := make(map[primitive.ObjectID]bool, len(picked))
		for _, id := range picked {
			if !original[id] {
				t.Fatalf("sampled id %v not in the input", id)
			}
			if seen[id] {
				t.Fatalf("sampled id %v repeated", id)
			}
			seen[id] = true
		}
	}
}

func TestPickRandomIDs_CountAtLeastLen(t *testing.T) {
	ids := []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID()}

	picked := quiz.PickRandomIDs(ids, 10)
	if len(picked) != len(ids) {
		t.Fatalf("expected full permutation of %d ids, got %d", len(ids), len(picked))
	}
}

func TestLoadQuestionsByIDs_SkipsMissing(t *testing.T) {
	known := primitive.NewObjectID()
	questions := fakeQuestions{known: {
		ID:            known,
		QuestionType:  models.QuestionTypeShortAnswer,
		Prompt:        models.TextDoc("Known"),
		CorrectAnswer: []string{"yes"},
	}}
	e := newTestEngine(fakeContents{}, questions)

	loaded, err := e.LoadQuestionsByIDs(context.Background(), []primitive.ObjectID{primitive.NewObjectID(), known, primitive.NewObjectID()})
	if err != nil {
		t.Fatalf("LoadQuestionsByIDs failed: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("expected 1 loaded question, got %d", len(loaded))
	}
	if loaded[0].ID != known {
		t.Errorf("loaded wrong question: %v", loaded[0].ID)
	}
}

func TestLoadQuestionsByIDs_ReshufflesButPreservesChoices(t *testing.T) {
	id := primitive.NewObjectID()
	keys := []string{"a", "b", "c", "d", "e"}
	choices := make([]models.Choice, 0, len(keys))
	for _, k := range keys {
		choices = append(choices, models.Choice{Key: k, Label: models.TextDoc(k)})
	}
	questions := fakeQuestions{id: {
		ID:            id,
		QuestionType:  models.QuestionTypeMultipleChoice,
		Prompt:        models.TextDoc("Shuffled"),
		Choices:       choices,
		CorrectAnswer: []string{"a"},
	}}
	e := newTestEngine(fakeContents{}, questions)

	loaded, err := e.LoadQuestionsByIDs(context.Background(), []primitive.ObjectID{id})
	if err != nil {
		t.Fatalf("LoadQuestionsByIDs failed: %v", err)
	}

	// A shuffle is some permutation of the same multiset, never a fixed order.
	got := make(map[string]bool, len(keys))
	for _, c := range loaded[0].Choices {
		got[c.Key] = true
	}
	if len(got) != len(keys) {
		t.Fatalf("choice multiset changed: %v", loaded[0].Choices)
	}
	for _, k := range keys {
		if !got[k] {
			t.Errorf("choice %q missing after shuffle", k)
		}
	}
}

func TestGradeQuiz_Aggregation(t *testing.T) {
	q1 := primitive.NewObjectID()
	q2 := primitive.NewObjectID()
	q3 := primitive.NewObjectID()
	questions := fakeQuestions{
		q1: {ID: q1, QuestionType: models.QuestionTypeShortAnswer, Prompt: models.TextDoc("One"), CorrectAnswer: []string{"alpha"}},
		q2: {ID: q2, QuestionType: models.QuestionTypeShortAnswer, Prompt: models.TextDoc("Two"), CorrectAnswer: []string{"beta"}},
		q3: {ID: q3, QuestionType: models.QuestionTypeShortAnswer, Prompt: models.TextDoc("Three"), CorrectAnswer: []string{"gamma"}},
	}
	contentID := primitive.NewObjectID()
	contents := fakeContents{contentID: quizContent(contentID, []primitive.ObjectID{q1, q2, q3}, 3)}
	e := newTestEngine(contents, questions)

	result, err := e.GradeQuiz(context.Background(), quiz.GradeRequest{
		ContentID:           contentID,
		SelectedQuestionIDs: []primitive.ObjectID{q1, q2, q3},
		Answers: map[string]any{
			q1.Hex(): "ALPHA",
			q2.Hex(): "wrong",
			q3.Hex(): "gamma",
		},
	})
	if err != nil {
		t.Fatalf("GradeQuiz failed: %v", err)
	}

	if result.Summary.Total != 3 {
		t.Errorf("Total: got %d, want 3", result.Summary.Total)
	}
	if result.Summary.Correct != 2 {
		t.Errorf("Correct: got %d, want 2", result.Summary.Correct)
	}
	if result.Summary.Accuracy != 67 {
		t.Errorf("Accuracy: got %d, want 67", result.Summary.Accuracy)
	}
}

func TestGradeQuiz_FiltersTamperedSelection(t *testing.T) {
	inPool := primitive.NewObjectID()
	outside := primitive.NewObjectID()
	questions := fakeQuestions{
		inPool:  {ID: inPool, QuestionType: models.QuestionTypeShortAnswer, Prompt: models.TextDoc("In"), CorrectAnswer: []string{"yes"}},
		outside: {ID: outside, QuestionType: models.QuestionTypeShortAnswer, Prompt: models.TextDoc("Out"), CorrectAnswer: []string{"yes"}},
	}
	contentID := primitive.NewObjectID()
	contents := fakeContents{contentID: quizContent(contentID, []primitive.ObjectID{inPool}, 1)}
	e := newTestEngine(contents, questions)

	result, err := e.GradeQuiz(context.Background(), quiz.GradeRequest{
		ContentID:           contentID,
		SelectedQuestionIDs: []primitive.ObjectID{inPool, outside},
		Answers:             map[string]any{inPool.Hex(): "yes", outside.Hex(): "yes"},
	})
	if err != nil {
		t.Fatalf("GradeQuiz failed: %v", err)
	}

	if result.Summary.Total != 1 {
		t.Errorf("Total: got %d, want 1 (outside-pool id must be dropped)", result.Summary.Total)
	}
}

func TestGradeQuiz_DeduplicatesSelection(t *testing.T) {
	known := primitive.NewObjectID()
	other := primitive.NewObjectID()
	questions := fakeQuestions{
		known: {ID: known, QuestionType: models.QuestionTypeShortAnswer, Prompt: models.TextDoc("Known"), CorrectAnswer: []string{"yes"}},
		other: {ID: other, QuestionType: models.QuestionTypeShortAnswer, Prompt: models.TextDoc("Other"), CorrectAnswer: []string{"no"}},
	}
	contentID := primitive.NewObjectID()
	contents := fakeContents{contentID: quizContent(contentID, []primitive.ObjectID{known, other}, 2)}
	e := newTestEngine(contents, questions)

	// Repeating one answered-correctly id must not multiply total/correct.
	result, err := e.GradeQuiz(context.Background(), quiz.GradeRequest{
		ContentID:           contentID,
		SelectedQuestionIDs: []primitive.ObjectID{known, known, known},
		Answers:             map[string]any{known.Hex(): "yes"},
	})
	if err != nil {
		t.Fatalf("GradeQuiz failed: %v", err)
	}

	if result.Summary.Total != 1 {
		t.Errorf("Total: got %d, want 1 (repeated id graded once)", result.Summary.Total)
	}
	if result.Summary.Correct != 1 {
		t.Errorf("Correct: got %d, want 1", result.Summary.Correct)
	}
	if len(result.Questions) != 1 {
		t.Errorf("Questions: got %d entries, want 1", len(result.Questions))
	}
}

func TestGradeQuiz_EmptySelectionZeroAccuracy(t *testing.T) {
	contentID := primitive.NewObjectID()
	contents := fakeContents{contentID: quizContent(contentID, nil, 0)}
	e := newTestEngine(contents, fakeQuestions{})

	result, err := e.GradeQuiz(context.Background(), quiz.GradeRequest{ContentID: contentID})
	if err != nil {
		t.Fatalf("GradeQuiz failed: %v", err)
	}
	if result.Summary.Total != 0 || result.Summary.Correct != 0 || result.Summary.Accuracy != 0 {
		t.Errorf("empty quiz summary: %+v", result.Summary)
	}
}

func TestGradeQuiz_MissingAnswerGradedEmpty(t *testing.T) {
	q1 := primitive.NewObjectID()
	questions := fakeQuestions{
		q1: {ID: q1, QuestionType: models.QuestionTypeShortAnswer, Prompt: models.TextDoc("One"), CorrectAnswer: []string{"alpha"}},
	}
	contentID := primitive.NewObjectID()
	contents := fakeContents{contentID: quizContent(contentID, []primitive.ObjectID{q1}, 1)}
	e := newTestEngine(contents, questions)

	result, err := e.GradeQuiz(context.Background(), quiz.GradeRequest{
		ContentID:           contentID,
		SelectedQuestionIDs: []primitive.ObjectID{q1},
		Answers:             map[string]any{},
	})
	if err != nil {
		t.Fatalf("GradeQuiz failed: %v", err)
	}
	if result.Summary.Total != 1 {
		t.Errorf("Total: got %d, want 1 (unanswered question still evaluated)", result.Summary.Total)
	}
	if result.Summary.Correct != 0 {
		t.Errorf("Correct: got %d, want 0", result.Summary.Correct)
	}
}
