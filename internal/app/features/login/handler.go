// Package login exposes the password sign-in endpoint for teachers and
// admins. Students have no password; the roster is managed for them.
package login

import (
	"context"
	"errors"
	"net/http"
	"time"

	loginstore "github.com/dalemusser/eduhub/internal/app/store/logins"
	userstore "github.com/dalemusser/eduhub/internal/app/store/users"
	"github.com/dalemusser/eduhub/internal/app/system/apiutil"
	"github.com/dalemusser/eduhub/internal/app/system/auth"
	"github.com/dalemusser/eduhub/internal/app/system/limits"
	"github.com/dalemusser/eduhub/internal/app/system/ratelimit"
	"github.com/dalemusser/eduhub/internal/app/system/timeouts"
	"github.com/dalemusser/eduhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type Handler struct {
	Users   *userstore.Store
	Logins  *loginstore.Store
	SM      *auth.SessionManager
	Limiter *ratelimit.Limiter
	Log     *zap.Logger
}

func NewHandler(db *mongo.Database, sm *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Users:  userstore.New(db),
		Logins: loginstore.New(db),
		SM:     sm,
		// 10 attempts per minute per client IP.
		Limiter: ratelimit.New(10, time.Minute),
		Log:     logger,
	}
}

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin handles POST /api/login. Failed lookups and bad passwords
// share one response so the endpoint does not confirm which emails exist.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	clientIP := ratelimit.ClientIP(r)
	if !h.Limiter.Allow(clientIP) {
		apiutil.WriteError(w, http.StatusTooManyRequests, "rate_limited", "too many login attempts; try again later")
		return
	}

	var body loginBody
	if !apiutil.DecodeBody(w, r, limits.MaxAdminBodySize, &body) {
		return
	}
	if body.Email == "" || body.Password == "" {
		apiutil.WriteError(w, http.StatusBadRequest, "bad_request", "email and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, body.Email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		h.rejectCredentials(w)
		return
	}
	if err != nil {
		apiutil.WriteServerError(w, h.Log, "login: lookup failed", err)
		return
	}
	if user.Role == models.RoleStudent || user.PasswordHash == "" {
		h.rejectCredentials(w)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)) != nil {
		h.rejectCredentials(w)
		return
	}

	h.Limiter.Reset(clientIP)

	if err := h.SM.SignIn(w, r, auth.SessionUser{
		ID:    user.ID.Hex(),
		Name:  user.DisplayName,
		Email: user.Email,
		Role:  user.Role,
	}); err != nil {
		apiutil.WriteServerError(w, h.Log, "login: session write failed", err)
		return
	}

	if err := h.Users.UpdateLastLogin(ctx, user.ID); err != nil {
		h.Log.Warn("login: last-login stamp failed", zap.Error(err))
	}
	if err := h.Logins.CreateFrom(ctx, r, user); err != nil {
		h.Log.Warn("login: record write failed", zap.Error(err))
	}

	h.Log.Info("user signed in",
		zap.String("user_id", user.ID.Hex()),
		zap.String("role", user.Role))
	apiutil.WriteJSON(w, http.StatusOK, user)
}

func (h *Handler) rejectCredentials(w http.ResponseWriter) {
	apiutil.WriteError(w, http.StatusUnauthorized, "invalid_credentials", "email or password is incorrect")
}
