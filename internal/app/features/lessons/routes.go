package lessons

import (
	"github.com/dalemusser/eduhub/internal/app/system/auth"
	"github.com/dalemusser/eduhub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes wires the lesson admin endpoints.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireRole(authz.ContentManagerRoles...))
		pr.Get("/", h.ServeList)
		pr.Post("/", h.HandleCreate)
		pr.Get("/{lessonID}", h.ServeGet)
		pr.Put("/{lessonID}", h.HandleUpdate)
		pr.Delete("/{lessonID}", h.HandleDelete)
	})
	return r
}
