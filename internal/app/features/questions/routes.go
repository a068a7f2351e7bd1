package questions

import (
	"github.com/dalemusser/eduhub/internal/app/system/auth"
	"github.com/dalemusser/eduhub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes wires the question admin endpoints.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireRole(authz.ContentManagerRoles...))
		pr.Get("/", h.ServeList)
		pr.Post("/", h.HandleCreate)
		pr.Get("/{questionID}", h.ServeGet)
		pr.Put("/{questionID}", h.HandleUpdate)
		pr.Delete("/{questionID}", h.HandleDelete)
	})
	return r
}
