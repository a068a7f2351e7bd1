// internal/app/store/questions/questionstore.go
package questionstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/eduhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDuplicatePrompt is returned when a question with the same normalized
// prompt text already exists.
var ErrDuplicatePrompt = errors.New("a question with this prompt already exists")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("questions")}
}

// GetByID loads a question by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Question, error) {
	var q models.Question
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&q); err != nil {
		return nil, err
	}
	return &q, nil
}

// List returns all questions sorted by display order.
func (s *Store) List(ctx context.Context) ([]models.Question, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "order", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Question
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a new question. The caller supplies normalized fields
// (PromptKey included); validation happens upstream in the import pipeline.
func (s *Store) Create(ctx context.Context, q models.Question) (models.Question, error) {
	q.ID = primitive.NewObjectID()
	q.UpdatedAt = time.Now()

	if _, err := s.c.InsertOne(ctx, q); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Question{}, ErrDuplicatePrompt
		}
		return models.Question{}, err
	}
	return q, nil
}

// Update replaces all mutable fields of a question.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, q models.Question) error {
	set := bson.M{
		"questionType":  q.QuestionType,
		"prompt":        q.Prompt,
		"promptKey":     q.PromptKey,
		"explanation":   q.Explanation,
		"difficulty":    q.Difficulty,
		"tags":          q.Tags,
		"order":         q.Order,
		"choices":       q.Choices,
		"correctAnswer": q.CorrectAnswer,
		"updatedAt":     time.Now(),
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if wafflemongo.IsDup(err) {
		return ErrDuplicatePrompt
	}
	return err
}

// Delete removes a question. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ExistingPromptKeys returns the set of normalized prompt keys already
// stored.
func (s *Store) ExistingPromptKeys(ctx context.Context) (map[string]bool, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"promptKey": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	keys := make(map[string]bool)
	for cur.Next(ctx) {
		var doc struct {
			PromptKey string `bson:"promptKey"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		keys[doc.PromptKey] = true
	}
	return keys, cur.Err()
}

// IDSet returns the set of existing question ids, for quiz pool reference
// checks.
func (s *Store) IDSet(ctx context.Context) (map[primitive.ObjectID]bool, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	ids := make(map[primitive.ObjectID]bool)
	for cur.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		ids[doc.ID] = true
	}
	return ids, cur.Err()
}

// MaxOrder returns the highest display order currently stored, or 0 when
// the collection is empty.
func (s *Store) MaxOrder(ctx context.Context) (int, error) {
	opts := options.FindOne().
		SetSort(bson.D{{Key: "order", Value: -1}}).
		SetProjection(bson.M{"order": 1})

	var doc struct {
		Order int `bson:"order"`
	}
	err := s.c.FindOne(ctx, bson.M{}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return doc.Order, nil
}

// InsertMany writes a validated batch. A duplicate-key failure means a
// concurrent writer won the race; it is surfaced as ErrDuplicatePrompt.
func (s *Store) InsertMany(ctx context.Context, questions []models.Question) error {
	if len(questions) == 0 {
		return nil
	}
	docs := make([]any, 0, len(questions))
	for i := range questions {
		docs = append(docs, questions[i])
	}
	if _, err := s.c.InsertMany(ctx, docs); err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicatePrompt
		}
		return err
	}
	return nil
}
