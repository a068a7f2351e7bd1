// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role values.
const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// Roles is the full set of allowed roles.
var Roles = []string{RoleAdmin, RoleTeacher, RoleStudent}

// IsValidRole reports whether r is an allowed role.
func IsValidRole(r string) bool {
	return r == RoleAdmin || r == RoleTeacher || r == RoleStudent
}

// User represents admins, teachers, and students. Students are bulk-imported
// and authenticate through the managed identity provider; teachers and
// admins may additionally carry a local password hash for the session login.
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DisplayName string             `bson:"displayName" json:"displayName"`
	Email       string             `bson:"email" json:"email"` // lowercased, unique
	Role        string             `bson:"role" json:"role"`   // admin | teacher | student

	// Student-only fields
	StudentNumber string `bson:"studentNumber,omitempty" json:"studentNumber,omitempty"`
	Notes         string `bson:"notes,omitempty" json:"notes,omitempty"`

	// Teacher/admin-only: bcrypt hash for the local session login.
	// Never serialized to clients.
	PasswordHash string `bson:"passwordHash,omitempty" json:"-"`

	LastLoginAt *time.Time `bson:"lastLoginAt,omitempty" json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt" json:"updatedAt"`
}
