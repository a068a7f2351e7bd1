// internal/app/system/authz/authz.go
package authz

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/eduhub/internal/app/system/auth"
	"github.com/dalemusser/eduhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Authorization failures. Handlers map these to 401/403 before any business
// logic or store writes run.
var (
	ErrNoCaller  = errors.New("no caller identity")
	ErrForbidden = errors.New("caller role not allowed")
)

// UserCtx returns the session user's role (lowercased), name, Mongo
// ObjectID, and a found flag. If no user is present in context or the user
// ID is malformed, it returns "visitor", "", NilObjectID, false, so callers
// can trust that ok=true means a valid, authenticated user.
func UserCtx(r *http.Request) (role string, name string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Malformed user ID in session - fail closed.
		return "visitor", "", primitive.NilObjectID, false
	}
	return strings.ToLower(user.Role), user.Name, userID, true
}

// IsAdmin reports whether the current request's user is an admin.
func IsAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RoleAdmin
}

// IsTeacher reports whether the current request's user is a teacher.
func IsTeacher(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RoleTeacher
}

// IsStudent reports whether the current request's user is a student.
func IsStudent(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RoleStudent
}

// CanManageContent reports whether the current user may create, edit, delete,
// or import content entities.
func CanManageContent(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	if !ok {
		return false
	}
	for _, allowed := range ContentManagerRoles {
		if role == allowed {
			return true
		}
	}
	return false
}

// Authorize resolves a raw caller user id to a stored user with one of the
// allowed roles. It is the precondition gate for bulk imports submitted with
// an explicit userId instead of a browser session: nothing else runs until
// the caller resolves.
//
// Returns ErrNoCaller when the id is empty or malformed or the user does not
// exist, and ErrForbidden when the user exists but the role is not allowed.
func Authorize(ctx context.Context, db *mongo.Database, rawUserID string, allowedRoles ...string) (*models.User, error) {
	rawUserID = strings.TrimSpace(rawUserID)
	if rawUserID == "" {
		return nil, ErrNoCaller
	}
	uid, err := primitive.ObjectIDFromHex(rawUserID)
	if err != nil {
		return nil, ErrNoCaller
	}

	var u models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"_id": uid}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoCaller
		}
		return nil, err
	}

	role := strings.ToLower(u.Role)
	for _, allowed := range allowedRoles {
		if role == strings.ToLower(allowed) {
			return &u, nil
		}
	}
	return nil, ErrForbidden
}
