package logout

import "github.com/go-chi/chi/v5"

// Routes wires the sign-out endpoint.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.HandleLogout)
	return r
}
