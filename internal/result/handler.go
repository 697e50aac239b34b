package result

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/saulo-duarte/aptitude-lambda/internal/auth"
	"github.com/saulo-duarte/aptitude-lambda/internal/config"
)

type Handler struct {
	service ResultService
}

func NewHandler(s ResultService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	s, err := auth.GetSessionFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var dto SubmitResultDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid request body for result")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	res, err := h.service.SubmitResult(r.Context(), s.UserID, dto)
	if err != nil {
		if errors.Is(err, ErrInvalidResult) || errors.Is(err, ErrNoOwner) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"result":  res,
	})
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	s, err := auth.GetSessionFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	resp, err := h.service.Dashboard(r.Context(), s.UserID)
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	config.JSON(w, http.StatusOK, resp)
}
