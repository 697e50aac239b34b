package aiquiz

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/aptitude-lambda/internal/auth"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(auth.RequireRole(auth.RoleAdmin, auth.RoleMentor))
	r.Post("/", h.GenerateQuestions)
	return r
}
