// internal/app/store/users/userstore.go
package userstore

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

var (
	// ErrDuplicateEmail is returned when attempting to create a user with an
	// email that already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	errBadRole        = errors.New(`role must be "admin"|"teacher"|"student"`)
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive email. Returns
// mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ListStudents returns all student-role users sorted by display name.
func (s *Store) ListStudents(ctx context.Context) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{"role": models.RoleStudent},
		options.Find().SetSort(bson.D{{Key: "displayName", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FindStudents runs a filtered query over student-role users with
// caller-supplied find options. The role predicate is merged into the
// filter so callers only describe the page window.
func (s *Store) FindStudents(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.User, error) {
	if filter == nil {
		filter = bson.M{}
	}
	filter["role"] = models.RoleStudent

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CountStudents returns the total number of student-role users.
func (s *Store) CountStudents(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"role": models.RoleStudent})
}

// Create inserts a new user after normalizing core fields.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.DisplayName = normalize.Name(u.DisplayName)
	u.Email = normalize.Email(u.Email)

	switch u.Role {
	case models.RoleAdmin, models.RoleTeacher, models.RoleStudent:
	default:
		return models.User{}, errBadRole
	}

	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// StudentUpdate holds the fields that can be updated for a student.
type StudentUpdate struct {
	DisplayName   string
	Email         string
	StudentNumber string
	Notes         string
}

// UpdateStudent updates a student's fields. Only updates users with
// role="student". Returns ErrDuplicateEmail if the email already belongs to
// another user.
func (s *Store) UpdateStudent(ctx context.Context, id primitive.ObjectID, upd StudentUpdate) error {
	set := bson.M{
		"displayName":   normalize.Name(upd.DisplayName),
		"email":         normalize.Email(upd.Email),
		"studentNumber": upd.StudentNumber,
		"notes":         upd.Notes,
		"updatedAt":     time.Now(),
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id, "role": models.RoleStudent}, bson.M{"$set": set})
	if wafflemongo.IsDup(err) {
		return ErrDuplicateEmail
	}
	return err
}

// DeleteStudent deletes a user by ID, but only if they have role="student".
// Returns the number of documents deleted (0 or 1).
func (s *Store) DeleteStudent(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "role": models.RoleStudent})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// EmailExistsForOther checks if an email already exists for a user other
// than the given ID.
func (s *Store) EmailExistsForOther(ctx context.Context, email string, excludeID primitive.ObjectID) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{
		"email": normalize.Email(email),
		"_id":   bson.M{"$ne": excludeID},
	}).Err()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	return false, err
}

// ExistingEmails returns the set of normalized emails already stored.
func (s *Store) ExistingEmails(ctx context.Context) (map[string]bool, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"email": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	emails := make(map[string]bool)
	for cur.Next(ctx) {
		var doc struct {
			Email string `bson:"email"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		emails[doc.Email] = true
	}
	return emails, cur.Err()
}

// UpdateLastLogin stamps the user's last sign-in time.
func (s *Store) UpdateLastLogin(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now()
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"lastLoginAt": now, "updatedAt": now}})
	return err
}

// InsertMany writes a validated student batch. A duplicate-key failure
// means a concurrent writer won the race; it is surfaced as
// ErrDuplicateEmail.
func (s *Store) InsertMany(ctx context.Context, users []models.User) error {
	if len(users) == 0 {
		return nil
	}
	docs := make([]any, 0, len(users))
	for i := range users {
		docs = append(docs, users[i])
	}
	if _, err := s.c.InsertMany(ctx, docs); err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}
