package question

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/aptitude-lambda/internal/auth"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.Counts)
	r.Get("/{category}", h.ListByCategory)

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)
		r.Use(auth.RequireRole(auth.RoleAdmin, auth.RoleMentor))
		r.Get("/{category}/answers", h.ListAnswers)
		r.Post("/", h.Create)
	})
	return r
}
