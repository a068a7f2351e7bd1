// internal/domain/models/subject.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Publish status values shared by subjects, units, lessons, and contents.
const (
	PublishPublic  = "public"
	PublishPrivate = "private"
)

// PublishStatuses is the full set of allowed publish status values.
var PublishStatuses = []string{PublishPublic, PublishPrivate}

// IsValidPublishStatus reports whether s is one of the two allowed values.
func IsValidPublishStatus(s string) bool {
	return s == PublishPublic || s == PublishPrivate
}

// Subject is a top-level grouping of units. Subject names are unique
// case-insensitively across the whole collection; NameCI holds the folded
// key backed by a unique index.
type Subject struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	NameCI        string             `bson:"nameCI" json:"-"` // lowercase, diacritics-stripped
	Description   RichText           `bson:"description" json:"description"`
	PublishStatus string             `bson:"publishStatus" json:"publishStatus"`
	Order         int                `bson:"order" json:"order"`

	CreatedBy primitive.ObjectID `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
