package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/eduhub/internal/app/system/normalize"
	"github.com/dalemusser/eduhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with the given role.
func (f *Fixtures) CreateUser(ctx context.Context, name, email, role string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:          primitive.NewObjectID(),
		DisplayName: normalize.Name(name),
		Email:       normalize.Email(email),
		Role:        role,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateSubject creates a test subject with the given name.
func (f *Fixtures) CreateSubject(ctx context.Context, name string, order int) models.Subject {
	f.t.Helper()

	s := models.Subject{
		ID:            primitive.NewObjectID(),
		Name:          normalize.Name(name),
		NameCI:        normalize.Key(name),
		Description:   models.EmptyDoc(),
		PublishStatus: models.PublishPrivate,
		Order:         order,
		UpdatedAt:     time.Now().UTC(),
	}
	if _, err := f.db.Collection("subjects").InsertOne(ctx, s); err != nil {
		f.t.Fatalf("failed to create test subject: %v", err)
	}
	return s
}

// CreateUnit creates a test unit under the given subject.
func (f *Fixtures) CreateUnit(ctx context.Context, subjectID primitive.ObjectID, name string, order int) models.Unit {
	f.t.Helper()

	u := models.Unit{
		ID:            primitive.NewObjectID(),
		SubjectID:     subjectID,
		Name:          normalize.Name(name),
		NameCI:        normalize.Key(name),
		Description:   models.EmptyDoc(),
		PublishStatus: models.PublishPrivate,
		Order:         order,
		UpdatedAt:     time.Now().UTC(),
	}
	if _, err := f.db.Collection("units").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test unit: %v", err)
	}
	return u
}

// CreateLesson creates a test lesson under the given unit.
func (f *Fixtures) CreateLesson(ctx context.Context, unitID primitive.ObjectID, title string, order int) models.Lesson {
	f.t.Helper()

	l := models.Lesson{
		ID:            primitive.NewObjectID(),
		UnitID:        unitID,
		Title:         normalize.Name(title),
		TitleCI:       normalize.Key(title),
		Description:   models.EmptyDoc(),
		PublishStatus: models.PublishPrivate,
		Order:         order,
		UpdatedAt:     time.Now().UTC(),
	}
	if _, err := f.db.Collection("lessons").InsertOne(ctx, l); err != nil {
		f.t.Fatalf("failed to create test lesson: %v", err)
	}
	return l
}

// Publish flips a document's publishStatus to public. Fixture documents
// default to private; catalog-facing tests publish them explicitly.
func (f *Fixtures) Publish(ctx context.Context, collection string, id primitive.ObjectID) {
	f.t.Helper()

	res, err := f.db.Collection(collection).UpdateByID(ctx, id,
		bson.M{"$set": bson.M{"publishStatus": models.PublishPublic}})
	if err != nil || res.MatchedCount == 0 {
		f.t.Fatalf("failed to publish %s/%s: %v", collection, id.Hex(), err)
	}
}

// CreateQuizContent creates a public quiz content over the given question pool.
func (f *Fixtures) CreateQuizContent(ctx context.Context, title string, questionIDs []primitive.ObjectID, perAttempt int) models.Content {
	f.t.Helper()

	allowRetry := true
	c := models.Content{
		ID:            primitive.NewObjectID(),
		Title:         normalize.Name(title),
		TitleCI:       normalize.Key(title),
		Description:   models.EmptyDoc(),
		PublishStatus: models.PublishPublic,
		Order:         1,
		Metadata: models.ContentMetadata{
			Type:                models.ContentTypeQuiz,
			QuestionIDs:         questionIDs,
			QuestionsPerAttempt: perAttempt,
			AllowRetry:          &allowRetry,
		},
		UpdatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("contents").InsertOne(ctx, c); err != nil {
		f.t.Fatalf("failed to create test quiz content: %v", err)
	}
	return c
}

// CreateMultipleChoiceQuestion creates a multipleChoice question with the
// given choice keys and correct answer keys.
func (f *Fixtures) CreateMultipleChoiceQuestion(ctx context.Context, prompt string, keys []string, correct []string) models.Question {
	f.t.Helper()

	choices := make([]models.Choice, 0, len(keys))
	for _, k := range keys {
		choices = append(choices, models.Choice{Key: k, Label: models.TextDoc("Label " + k)})
	}
	q := models.Question{
		ID:            primitive.NewObjectID(),
		QuestionType:  models.QuestionTypeMultipleChoice,
		Prompt:        models.TextDoc(prompt),
		PromptKey:     normalize.Key(prompt),
		Difficulty:    models.DifficultyEasy,
		Order:         1,
		Choices:       choices,
		CorrectAnswer: correct,
		UpdatedAt:     time.Now().UTC(),
	}
	if _, err := f.db.Collection("questions").InsertOne(ctx, q); err != nil {
		f.t.Fatalf("failed to create test question: %v", err)
	}
	return q
}
