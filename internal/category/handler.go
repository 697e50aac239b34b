package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/aptitude-lambda/internal/config"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	config.JSON(w, http.StatusOK, All())
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := Lookup(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "category not found", http.StatusNotFound)
		return
	}
	config.JSON(w, http.StatusOK, c)
}

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	return r
}
