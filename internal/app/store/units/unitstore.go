// internal/app/store/units/unitstore.go
package unitstore

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

// ErrDuplicateName is returned when a unit with the same normalized name
// already exists within the same subject.
var ErrDuplicateName = errors.New("a unit with this name already exists in this subject")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("units")}
}

// GetByID loads a unit by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Unit, error) {
	var u models.Unit
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// List returns all units, sorted by display order.
func (s *Store) List(ctx context.Context) ([]models.Unit, error) {
	return s.list(ctx, bson.M{})
}

// ListBySubject returns the units of one subject, sorted by display order.
func (s *Store) ListBySubject(ctx context.Context, subjectID primitive.ObjectID) ([]models.Unit, error) {
	return s.list(ctx, bson.M{"subjectId": subjectID})
}

// ListPublicBySubject returns the published units of one subject.
func (s *Store) ListPublicBySubject(ctx context.Context, subjectID primitive.ObjectID) ([]models.Unit, error) {
	return s.list(ctx, bson.M{"subjectId": subjectID, "publishStatus": models.PublishPublic})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.Unit, error) {
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "order", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Unit
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a new unit after normalizing fields.
func (s *Store) Create(ctx context.Context, u models.Unit) (models.Unit, error) {
	u.ID = primitive.NewObjectID()
	u.Name = normalize.Name(u.Name)
	u.NameCI = normalize.Key(u.Name)
	if u.PublishStatus == "" {
		u.PublishStatus = models.PublishPrivate
	}
	u.UpdatedAt = time.Now()

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Unit{}, ErrDuplicateName
		}
		return models.Unit{}, err
	}
	return u, nil
}

// Update replaces all mutable fields of a unit.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, u models.Unit) error {
	set := bson.M{
		"subjectId":     u.SubjectID,
		"name":          normalize.Name(u.Name),
		"nameCI":        normalize.Key(u.Name),
		"description":   u.Description,
		"publishStatus": u.PublishStatus,
		"order":         u.Order,
		"updatedAt":     time.Now(),
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if wafflemongo.IsDup(err) {
		return ErrDuplicateName
	}
	return err
}

// Delete removes a unit. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ExistingNameKeysBySubject returns, per subject, the set of normalized unit
// name keys already stored. One query seeds the whole batch's duplicate
// checks.
func (s *Store) ExistingNameKeysBySubject(ctx context.Context) (map[primitive.ObjectID]map[string]bool, error) {
	cur, err := s.c.Find(ctx, bson.M{},
		options.Find().SetProjection(bson.M{"subjectId": 1, "nameCI": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	keys := make(map[primitive.ObjectID]map[string]bool)
	for cur.Next(ctx) {
		var doc struct {
			SubjectID primitive.ObjectID `bson:"subjectId"`
			NameCI    string             `bson:"nameCI"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		if keys[doc.SubjectID] == nil {
			keys[doc.SubjectID] = make(map[string]bool)
		}
		keys[doc.SubjectID][doc.NameCI] = true
	}
	return keys, cur.Err()
}

// IDSet returns the set of existing unit ids, for reference checks.
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

// MaxOrderBySubject returns, per subject, the highest display order
// currently stored. Subjects with no units are simply absent.
func (s *Store) MaxOrderBySubject(ctx context.Context) (map[primitive.ObjectID]int, error) {
	cur, err := s.c.Find(ctx, bson.M{},
		options.Find().SetProjection(bson.M{"subjectId": 1, "order": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	max := make(map[primitive.ObjectID]int)
	for cur.Next(ctx) {
		var doc struct {
			SubjectID primitive.ObjectID `bson:"subjectId"`
			Order     int                `bson:"order"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		if doc.Order > max[doc.SubjectID] {
			max[doc.SubjectID] = doc.Order
		}
	}
	return max, cur.Err()
}

// InsertMany writes a validated batch. A duplicate-key failure means a
// concurrent writer won the race; it is surfaced as ErrDuplicateName.
func (s *Store) InsertMany(ctx context.Context, units []models.Unit) error {
	if len(units) == 0 {
		return nil
	}
	docs := make([]any, 0, len(units))
	for i := range units {
		docs = append(docs, units[i])
	}
	if _, err := s.c.InsertMany(ctx, docs); err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateName
		}
		return err
	}
	return nil
}
