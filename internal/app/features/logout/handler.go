// Package logout clears the caller's session.
package logout

import (
	"net/http"

	"github.com/dalemusser/eduhub/internal/app/system/apiutil"
	"github.com/dalemusser/eduhub/internal/app/system/auth"
	"go.uber.org/zap"
)

type Handler struct {
	SM  *auth.SessionManager
	Log *zap.Logger
}

func NewHandler(sm *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{SM: sm, Log: logger}
}

// HandleLogout handles POST /api/logout. Signing out without a session is
// not an error.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.SM.SignOut(w, r); err != nil {
		apiutil.WriteServerError(w, h.Log, "logout: session clear failed", err)
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, map[string]string{"status": "signed_out"})
}
