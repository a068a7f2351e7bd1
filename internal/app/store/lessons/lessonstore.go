// internal/app/store/lessons/lessonstore.go
package lessonstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/eduhub/internal/app/system/normalize"
	"github.com/dalemusser/eduhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDuplicateTitle is returned when a lesson with the same normalized title
// already exists within the same unit.
var ErrDuplicateTitle = errors.New("a lesson with this title already exists in this unit")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("lessons")}
}

// GetByID loads a lesson by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Lesson, error) {
	var l models.Lesson
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&l); err != nil {
		return nil, err
	}
	return &l, nil
}

// GetPublicByID loads a lesson only if it is published.
func (s *Store) GetPublicByID(ctx context.Context, id primitive.ObjectID) (*models.Lesson, error) {
	var l models.Lesson
	err := s.c.FindOne(ctx, bson.M{"_id": id, "publishStatus": models.PublishPublic}).Decode(&l)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// List returns all lessons, sorted by display order.
func (s *Store) List(ctx context.Context) ([]models.Lesson, error) {
	return s.list(ctx, bson.M{})
}

// ListByUnit returns the lessons of one unit, sorted by display order.
func (s *Store) ListByUnit(ctx context.Context, unitID primitive.ObjectID) ([]models.Lesson, error) {
	return s.list(ctx, bson.M{"unitId": unitID})
}

// ListPublicByUnit returns the published lessons of one unit.
func (s *Store) ListPublicByUnit(ctx context.Context, unitID primitive.ObjectID) ([]models.Lesson, error) {
	return s.list(ctx, bson.M{"unitId": unitID, "publishStatus": models.PublishPublic})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.Lesson, error) {
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "order", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Lesson
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a new lesson after normalizing fields.
func (s *Store) Create(ctx context.Context, l models.Lesson) (models.Lesson, error) {
	l.ID = primitive.NewObjectID()
	l.Title = normalize.Name(l.Title)
	l.TitleCI = normalize.Key(l.Title)
	if l.PublishStatus == "" {
		l.PublishStatus = models.PublishPrivate
	}
	l.UpdatedAt = time.Now()

	if _, err := s.c.InsertOne(ctx, l); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Lesson{}, ErrDuplicateTitle
		}
		return models.Lesson{}, err
	}
	return l, nil
}

// Update replaces all mutable fields of a lesson.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, l models.Lesson) error {
	set := bson.M{
		"unitId":        l.UnitID,
		"title":         normalize.Name(l.Title),
		"titleCI":       normalize.Key(l.Title),
		"description":   l.Description,
		"contentIds":    l.ContentIDs,
		"tags":          l.Tags,
		"publishStatus": l.PublishStatus,
		"order":         l.Order,
		"updatedAt":     time.Now(),
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if wafflemongo.IsDup(err) {
		return ErrDuplicateTitle
	}
	return err
}

// Delete removes a lesson. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ExistingTitleKeysByUnit returns, per unit, the set of normalized lesson
// title keys already stored.
func (s *Store) ExistingTitleKeysByUnit(ctx context.Context) (map[primitive.ObjectID]map[string]bool, error) {
	cur, err := s.c.Find(ctx, bson.M{},
		options.Find().SetProjection(bson.M{"unitId": 1, "titleCI": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	keys := make(map[primitive.ObjectID]map[string]bool)
	for cur.Next(ctx) {
		var doc struct {
			UnitID  primitive.ObjectID `bson:"unitId"`
			TitleCI string             `bson:"titleCI"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		if keys[doc.UnitID] == nil {
			keys[doc.UnitID] = make(map[string]bool)
		}
		keys[doc.UnitID][doc.TitleCI] = true
	}
	return keys, cur.Err()
}

// MaxOrderByUnit returns, per unit, the highest display order currently
// stored.
func (s *Store) MaxOrderByUnit(ctx context.Context) (map[primitive.ObjectID]int, error) {
	cur, err := s.c.Find(ctx, bson.M{},
		options.Find().SetProjection(bson.M{"unitId": 1, "order": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	max := make(map[primitive.ObjectID]int)
	for cur.Next(ctx) {
		var doc struct {
			UnitID primitive.ObjectID `bson:"unitId"`
			Order  int                `bson:"order"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		if doc.Order > max[doc.UnitID] {
			max[doc.UnitID] = doc.Order
		}
	}
	return max, cur.Err()
}

// InsertMany writes a validated batch. A duplicate-key failure means a
// concurrent writer won the race; it is surfaced as ErrDuplicateTitle.
func (s *Store) InsertMany(ctx context.Context, lessons []models.Lesson) error {
	if len(lessons) == 0 {
		return nil
	}
	docs := make([]any, 0, len(lessons))
	for i := range lessons {
		docs = append(docs, lessons[i])
	}
	if _, err := s.c.InsertMany(ctx, docs); err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateTitle
		}
		return err
	}
	return nil
}
