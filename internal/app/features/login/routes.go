package login

import "github.com/go-chi/chi/v5"

// Routes wires the sign-in endpoint.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.HandleLogin)
	return r
}
