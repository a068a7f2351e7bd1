package contents

import (
	"github.com/dalemusser/eduhub/internal/app/system/auth"
	"github.com/dalemusser/eduhub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes wires the content admin endpoints.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireRole(authz.ContentManagerRoles...))
		pr.Get("/", h.ServeList)
		pr.Post("/", h.HandleCreate)
		pr.Get("/{contentID}", h.ServeGet)
		pr.Put("/{contentID}", h.HandleUpdate)
		pr.Delete("/{contentID}", h.HandleDelete)
	})
	return r
}
