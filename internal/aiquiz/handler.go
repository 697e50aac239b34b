package aiquiz

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/saulo-duarte/aptitude-lambda/internal/category"
	"github.com/saulo-duarte/aptitude-lambda/internal/config"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) GenerateQuestions(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Generate(r.Context(), req)
	switch {
	case errors.Is(err, ErrInvalidRequest):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, category.ErrUnknownCategory):
		http.Error(w, "category not found", http.StatusNotFound)
		return
	case errors.Is(err, ErrProviderUnavailable):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	case errors.Is(err, ErrNoValidDrafts):
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	case err != nil:
		log.WithError(err).Error("Failed to generate questions")
		http.Error(w, "failed to generate questions", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusCreated, resp)
}
