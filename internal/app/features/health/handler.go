// Package health exposes the liveness endpoint used by deploy probes.
package health

import (
	"context"
	"net/http"

	"github.com/dalemusser/eduhub/internal/app/system/apiutil"
	"github.com/dalemusser/eduhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}

type healthResponse struct {
	Status string `json:"status"`
	Mongo  string `json:"mongo"`
}

// ServeHealth handles GET /health. A failed Mongo ping degrades the
// response to 503 so load balancers rotate the instance out.
func (h *Handler) ServeHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	if err := h.DB.Client().Ping(ctx, readpref.Primary()); err != nil {
		h.Log.Warn("health: mongo ping failed", zap.Error(err))
		apiutil.WriteJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "degraded", Mongo: "unreachable"})
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, healthResponse{Status: "ok", Mongo: "ok"})
}
