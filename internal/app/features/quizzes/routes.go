// internal/app/features/quizzes/routes.go
package quizzes

import (
	"github.com/go-chi/chi/v5"
)

// Routes mounts the quiz endpoints. Typically:
// r.Mount("/api/quiz", quizzes.Routes(handler)).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/{contentID}", h.ServeAttempt)
	r.Post("/{contentID}/grade", h.HandleGrade)

	return r
}
