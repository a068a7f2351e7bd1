// Package importer exposes the bulk-import endpoints: one JSON endpoint per
// entity family plus a CSV roster endpoint for students.
package importer

import (
	"errors"
	"net/http"

	"github.com/dalemusser/eduhub/internal/app/system/apiutil"
	"github.com/dalemusser/eduhub/internal/app/system/auth"
	"github.com/dalemusser/eduhub/internal/app/system/authz"
	"github.com/dalemusser/eduhub/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler holds dependencies for the bulk-import endpoints.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}

// successResponse is the payload for an accepted batch. BatchID is a
// correlation id echoed here and attached to the acceptance log line.
type successResponse struct {
	Status  string `json:"status"`
	Count   int    `json:"count"`
	BatchID string `json:"batchId"`
}

// insertFailed writes the response for a failed batch insert. Validation
// runs against a snapshot read, so a concurrent writer can still win the
// race to a uniqueness key; the store surfaces that as its duplicate
// sentinel and the client gets a conflict to re-validate against, not a
// server error.
func (h *Handler) insertFailed(w http.ResponseWriter, family string, err, dup error) {
	if errors.Is(err, dup) {
		apiutil.WriteError(w, http.StatusConflict, "duplicate",
			"a concurrent import created a duplicate "+family+" entry; re-submit to validate against current data")
		return
	}
	apiutil.WriteServerError(w, h.Log, "importer: insert "+family+" failed", err)
}

// accepted logs an inserted batch under a fresh batch id and writes the
// success payload.
func (h *Handler) accepted(w http.ResponseWriter, family string, count int, callerID string) {
	batchID := uuid.NewString()
	h.Log.Info("bulk import accepted",
		zap.String("batch_id", batchID),
		zap.String("family", family),
		zap.Int("count", count),
		zap.String("user_id", callerID))
	apiutil.WriteJSON(w, http.StatusCreated, successResponse{Status: "success", Count: count, BatchID: batchID})
}

// caller resolves the importing user: the signed-in session user when one
// is present, otherwise the userId carried in the request body (API
// clients). Either way the id must resolve to a stored teacher or admin
// before any validation runs.
func (h *Handler) caller(w http.ResponseWriter, r *http.Request, bodyUserID string) (*models.User, bool) {
	rawID := bodyUserID
	if su, ok := auth.CurrentUser(r); ok {
		rawID = su.ID
	}

	user, err := authz.Authorize(r.Context(), h.DB, rawID, authz.ContentManagerRoles...)
	switch {
	case errors.Is(err, authz.ErrNoCaller):
		apiutil.WriteError(w, http.StatusUnauthorized, "unauthorized", "a valid userId is required")
		return nil, false
	case errors.Is(err, authz.ErrForbidden):
		apiutil.WriteError(w, http.StatusForbidden, "forbidden", "only teachers and admins can import")
		return nil, false
	case err != nil:
		apiutil.WriteServerError(w, h.Log, "importer: authorize failed", err)
		return nil, false
	}
	return user, true
}

// bodyUserID pulls the optional userId string out of a decoded body.
func bodyUserID(body map[string]any) string {
	s, _ := body["userId"].(string)
	return s
}
