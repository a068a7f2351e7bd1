package catalog

import (
	"github.com/go-chi/chi/v5"
)

// Routes wires the public catalog endpoints. No auth middleware: the
// handlers only ever serve published documents.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/subjects", h.ServeSubjects)
	r.Get("/subjects/{subjectID}/units", h.ServeUnits)
	r.Get("/units/{unitID}/lessons", h.ServeLessons)
	r.Get("/lessons/{lessonID}", h.ServeLesson)
	return r
}
