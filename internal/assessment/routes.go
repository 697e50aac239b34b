package assessment

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.Start)
	r.Get("/{id}", h.Get)
	r.Post("/{id}/answer", h.SelectAnswer)
	r.Post("/{id}/advance", h.Advance)
	r.Post("/{id}/finish", h.Finish)
	r.Delete("/{id}", h.Discard)
	return r
}
