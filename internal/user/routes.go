package user

import "github.com/go-chi/chi/v5"

// AuthRoutes are public.
func AuthRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	return r
}

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/me", h.GetUser)
	r.Get("/{id}/dashboard", h.Dashboard)
	return r
}
