// internal/domain/models/unit.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Unit belongs to exactly one Subject. Unit names are unique within their
// subject, case-insensitively; the (subjectId, nameCI) pair is backed by a
// unique index.
type Unit struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SubjectID     primitive.ObjectID `bson:"subjectId" json:"subjectId"`
	Name          string             `bson:"name" json:"name"`
	NameCI        string             `bson:"nameCI" json:"-"`
	Description   RichText           `bson:"description" json:"description"`
	PublishStatus string             `bson:"publishStatus" json:"publishStatus"`
	Order         int                `bson:"order" json:"order"`

	CreatedBy primitive.ObjectID `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
