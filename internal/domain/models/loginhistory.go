// internal/domain/models/loginhistory.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LoginRecord captures a single successful sign-in.
// CreatedAt is indexed for recent-activity views.
type LoginRecord struct {
	UserID    primitive.ObjectID `bson:"userId"`
	Role      string             `bson:"role"`
	IP        string             `bson:"ip"`
	UserAgent string             `bson:"userAgent,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
}
