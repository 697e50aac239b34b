package question

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/saulo-duarte/aptitude-lambda/internal/category"
	"github.com/saulo-duarte/aptitude-lambda/internal/config"
)

type Handler struct {
	service  QuestionService
	validate *validator.Validate
}

func NewHandler(s QuestionService) *Handler {
	return &Handler{service: s, validate: validator.New()}
}

func (h *Handler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	h.listByCategory(w, r, false)
}

// ListAnswers is ListByCategory with the correct option and explanations.
func (h *Handler) ListAnswers(w http.ResponseWriter, r *http.Request) {
	h.listByCategory(w, r, true)
}

func (h *Handler) listByCategory(w http.ResponseWriter, r *http.Request, withAnswer bool) {
	log := config.WithContext(r.Context())

	categoryID := chi.URLParam(r, "category")
	questions, err := h.service.ListByCategory(r.Context(), categoryID)
	if errors.Is(err, category.ErrUnknownCategory) {
		log.WithField("category", categoryID).Warn("Unknown category requested")
		http.Error(w, "category not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	entries := make([]BankEntry, 0, len(questions))
	for _, q := range questions {
		entries = append(entries, toBankEntry(q, withAnswer))
	}

	config.JSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"questions": entries,
	})
}

func (h *Handler) Counts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.CountByCategory(r.Context())
	if err != nil {
		config.WithContext(r.Context()).WithError(err).Error("Failed to count questions")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	out := make(map[string]int64, len(counts))
	for _, c := range category.All() {
		out[c.ID] = counts[c.ID]
	}
	config.JSON(w, http.StatusOK, map[string]interface{}{"counts": out})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto CreateQuestionsDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid request body for questions")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	questions := make([]*Question, 0, len(dto.Questions))
	for _, d := range dto.Questions {
		questions = append(questions, d.toQuestion())
	}

	if err := h.service.AddQuestions(r.Context(), questions); err != nil {
		if errors.Is(err, ErrInvalidQuestion) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	entries := make([]BankEntry, 0, len(questions))
	for _, q := range questions {
		entries = append(entries, toBankEntry(q, true))
	}
	config.JSON(w, http.StatusCreated, map[string]interface{}{
		"success":   true,
		"questions": entries,
	})
}
