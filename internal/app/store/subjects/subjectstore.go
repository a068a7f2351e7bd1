// internal/app/store/subjects/subjectstore.go
package subjectstore

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

// ErrDuplicateName is returned when a subject with the same normalized name
// already exists.
var ErrDuplicateName = errors.New("a subject with this name already exists")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("subjects")}
}

// GetByID loads a subject by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Subject, error) {
	var subj models.Subject
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&subj); err != nil {
		return nil, err
	}
	return &subj, nil
}

// List returns all subjects sorted by display order.
func (s *Store) List(ctx context.Context) ([]models.Subject, error) {
	return s.list(ctx, bson.M{})
}

// ListPublic returns published subjects sorted by display order.
func (s *Store) ListPublic(ctx context.Context) ([]models.Subject, error) {
	return s.list(ctx, bson.M{"publishStatus": models.PublishPublic})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.Subject, error) {
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "order", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Subject
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a new subject after normalizing fields.
func (s *Store) Create(ctx context.Context, subj models.Subject) (models.Subject, error) {
	subj.ID = primitive.NewObjectID()
	subj.Name = normalize.Name(subj.Name)
	subj.NameCI = normalize.Key(subj.Name)
	if subj.PublishStatus == "" {
		subj.PublishStatus = models.PublishPrivate
	}
	subj.UpdatedAt = time.Now()

	if _, err := s.c.InsertOne(ctx, subj); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Subject{}, ErrDuplicateName
		}
		return models.Subject{}, err
	}
	return subj, nil
}

// Update replaces all mutable fields of a subject.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, subj models.Subject) error {
	set := bson.M{
		"name":          normalize.Name(subj.Name),
		"nameCI":        normalize.Key(subj.Name),
		"description":   subj.Description,
		"publishStatus": subj.PublishStatus,
		"order":         subj.Order,
		"updatedAt":     time.Now(),
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if wafflemongo.IsDup(err) {
		return ErrDuplicateName
	}
	return err
}

// Delete removes a subject. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ExistingNameKeys returns the set of normalized name keys already stored,
// for batch duplicate checks.
func (s *Store) ExistingNameKeys(ctx context.Context) (map[string]bool, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"nameCI": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	keys := make(map[string]bool)
	for cur.Next(ctx) {
		var doc struct {
			NameCI string `bson:"nameCI"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		keys[doc.NameCI] = true
	}
	return keys, cur.Err()
}

// IDSet returns the set of existing subject ids, for reference checks.
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

// MaxOrder returns the highest display order currently stored, or 0 when the
// collection is empty.
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

// InsertMany writes a validated batch. The caller only invokes this when
// validation produced zero errors; a duplicate-key failure here means a
// concurrent writer won the race, and is surfaced as ErrDuplicateName.
func (s *Store) InsertMany(ctx context.Context, subjects []models.Subject) error {
	if len(subjects) == 0 {
		return nil
	}
	docs := make([]any, 0, len(subjects))
	for i := range subjects {
		docs = append(docs, subjects[i])
	}
	if _, err := s.c.InsertMany(ctx, docs); err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateName
		}
		return err
	}
	return nil
}
