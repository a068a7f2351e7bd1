// internal/app/store/contents/contentstore.go
package contentstore

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

// ErrDuplicateTitle is returned when a content with the same normalized
// title already exists.
var ErrDuplicateTitle = errors.New("a content with this title already exists")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("contents")}
}

// GetByID loads a content by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Content, error) {
	var c models.Content
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByIDs loads several contents, keyed by id. Unknown ids are simply
// absent from the result.
func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Content, error) {
	if len(ids) == 0 {
		return map[primitive.ObjectID]models.Content{}, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make(map[primitive.ObjectID]models.Content)
	for cur.Next(ctx) {
		var c models.Content
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		out[c.ID] = c
	}
	return out, cur.Err()
}

// List returns all contents sorted by display order.
func (s *Store) List(ctx context.Context) ([]models.Content, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "order", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Content
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a new content after normalizing fields.
func (s *Store) Create(ctx context.Context, c models.Content) (models.Content, error) {
	c.ID = primitive.NewObjectID()
	c.Title = normalize.Name(c.Title)
	c.TitleCI = normalize.Key(c.Title)
	if c.PublishStatus == "" {
		c.PublishStatus = models.PublishPrivate
	}
	c.UpdatedAt = time.Now()

	if _, err := s.c.InsertOne(ctx, c); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Content{}, ErrDuplicateTitle
		}
		return models.Content{}, err
	}
	return c, nil
}

// Update replaces all mutable fields of a content.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, c models.Content) error {
	set := bson.M{
		"title":         normalize.Name(c.Title),
		"titleCI":       normalize.Key(c.Title),
		"description":   c.Description,
		"tags":          c.Tags,
		"publishStatus": c.PublishStatus,
		"order":         c.Order,
		"metadata":      c.Metadata,
		"updatedAt":     time.Now(),
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if wafflemongo.IsDup(err) {
		return ErrDuplicateTitle
	}
	return err
}

// Delete removes a content. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ExistingTitleKeys returns the set of normalized title keys already stored.
func (s *Store) ExistingTitleKeys(ctx context.Context) (map[string]bool, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"titleCI": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	keys := make(map[string]bool)
	for cur.Next(ctx) {
		var doc struct {
			TitleCI string `bson:"titleCI"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		keys[doc.TitleCI] = true
	}
	return keys, cur.Err()
}

// IDSet returns the set of existing content ids, for lesson contentIds
// reference checks.
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
// concurrent writer won the race; it is surfaced as ErrDuplicateTitle.
func (s *Store) InsertMany(ctx context.Context, contents []models.Content) error {
	if len(contents) == 0 {
		return nil
	}
	docs := make([]any, 0, len(contents))
	for i := range contents {
		docs = append(docs, contents[i])
	}
	if _, err := s.c.InsertMany(ctx, docs); err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateTitle
		}
		return err
	}
	return nil
}
