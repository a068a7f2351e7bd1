// internal/domain/models/lesson.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Lesson belongs to exactly one Unit and references its contents in display
// order. Lesson titles are unique within their unit, case-insensitively;
// the (unitId, titleCI) pair is backed by a unique index.
type Lesson struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UnitID        primitive.ObjectID   `bson:"unitId" json:"unitId"`
	Title         string               `bson:"title" json:"title"`
	TitleCI       string               `bson:"titleCI" json:"-"`
	Description   RichText             `bson:"description" json:"description"`
	ContentIDs    []primitive.ObjectID `bson:"contentIds" json:"contentIds"`
	Tags          []string             `bson:"tags,omitempty" json:"tags,omitempty"`
	PublishStatus string               `bson:"publishStatus" json:"publishStatus"`
	Order         int                  `bson:"order" json:"order"`

	CreatedBy primitive.ObjectID `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
