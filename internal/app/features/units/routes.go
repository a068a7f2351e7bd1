package units

import (
	"github.com/dalemusser/eduhub/internal/app/system/auth"
	"github.com/dalemusser/eduhub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes wires the unit admin endpoints. All of them require a signed-in
// teacher or admin.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireRole(authz.ContentManagerRoles...))
		pr.Get("/", h.ServeList)
		pr.Post("/", h.HandleCreate)
		pr.Get("/{unitID}", h.ServeGet)
		pr.Put("/{unitID}", h.HandleUpdate)
		pr.Delete("/{unitID}", h.HandleDelete)
	})
	return r
}
