package students

import (
	"github.com/dalemusser/eduhub/internal/app/system/auth"
	"github.com/dalemusser/eduhub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes wires the student roster admin endpoints.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireRole(authz.ContentManagerRoles...))
		pr.Get("/", h.ServeList)
		pr.Post("/", h.HandleCreate)
		pr.Get("/{studentID}", h.ServeGet)
		pr.Put("/{studentID}", h.HandleUpdate)
		pr.Delete("/{studentID}", h.HandleDelete)
	})
	return r
}
