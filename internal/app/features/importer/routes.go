// internal/app/features/importer/routes.go
package importer

import (
	"github.com/go-chi/chi/v5"
)

// Routes mounts the bulk-import endpoints. Typically:
// r.Mount("/api/import", importer.Routes(handler)).
//
// Authorization happens inside each handler: the caller id can come from
// the session or from the request body, so a session-requiring middleware
// would wrongly reject API clients.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/subjects", h.ImportSubjects)
	r.Post("/units", h.ImportUnits)
	r.Post("/lessons", h.ImportLessons)
	r.Post("/contents", h.ImportContents)
	r.Post("/questions", h.ImportQuestions)
	r.Post("/students", h.ImportStudents)
	r.Post("/students/csv", h.ImportStudentsCSV)

	return r
}
