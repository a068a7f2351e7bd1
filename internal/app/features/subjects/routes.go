// internal/app/features/subjects/routes.go
package subjects

import (
	"github.com/dalemusser/eduhub/internal/app/system/auth"
	"github.com/dalemusser/eduhub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the subject admin endpoints. Typically:
// r.Mount("/api/subjects", subjects.Routes(handler, sessionMgr)).
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireRole(authz.ContentManagerRoles...))

		pr.Get("/", h.ServeList)
		pr.Post("/", h.HandleCreate)
		pr.Get("/{subjectID}", h.ServeGet)
		pr.Put("/{subjectID}", h.HandleUpdate)
		pr.Delete("/{subjectID}", h.HandleDelete)
	})

	return r
}
