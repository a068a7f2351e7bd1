// Package indexes creates the MongoDB indexes the app relies on.
//
// The unique indexes on the normalized uniqueness keys are load-bearing:
// bulk import validates duplicates against a snapshot read, and a second
// concurrent importer could pass that check against stale data. The unique
// index makes the final insert fail instead of silently persisting a
// duplicate.
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureAll creates all indexes, returning a combined error listing every
// collection that failed. Index creation is idempotent: re-running against
// an already-indexed database is a no-op.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(coll string, models []mongo.IndexModel) {
		if len(models) == 0 {
			return
		}
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			problems = append(problems, coll+": "+err.Error())
		}
	}

	ensure("users", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		},
		{
			Keys:    bson.D{{Key: "role", Value: 1}},
			Options: options.Index().SetName("role"),
		},
	})

	ensure("subjects", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "nameCI", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_nameCI"),
		},
	})

	ensure("units", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "subjectId", Value: 1}, {Key: "nameCI", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_subject_nameCI"),
		},
	})

	ensure("lessons", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "unitId", Value: 1}, {Key: "titleCI", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_unit_titleCI"),
		},
		{
			Keys:    bson.D{{Key: "publishStatus", Value: 1}},
			Options: options.Index().SetName("publishStatus"),
		},
	})

	ensure("contents", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "titleCI", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_titleCI"),
		},
		{
			Keys:    bson.D{{Key: "metadata.type", Value: 1}},
			Options: options.Index().SetName("metadata_type"),
		},
	})

	ensure("questions", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "promptKey", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_promptKey"),
		},
		{
			Keys:    bson.D{{Key: "questionType", Value: 1}},
			Options: options.Index().SetName("questionType"),
		},
	})

	ensure("login_records", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("user_createdAt"),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("createdAt"),
		},
	})

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}
