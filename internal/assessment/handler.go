package assessment

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/saulo-duarte/aptitude-lambda/internal/auth"
	"github.com/saulo-duarte/aptitude-lambda/internal/category"
	"github.com/saulo-duarte/aptitude-lambda/internal/config"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	manager  *Manager
	validate *validator.Validate
}

func NewHandler(m *Manager) *Handler {
	return &Handler{manager: m, validate: validator.New()}
}

func writeError(w http.ResponseWriter, log logrus.FieldLogger, err error) {
	switch {
	case errors.Is(err, category.ErrUnknownCategory):
		http.Error(w, "category not found", http.StatusNotFound)
	case errors.Is(err, ErrAttemptNotFound), errors.Is(err, ErrAttemptClosed):
		http.Error(w, "attempt not found", http.StatusNotFound)
	case errors.Is(err, ErrEmptyQuestionList):
		http.Error(w, "no questions found for this category", http.StatusUnprocessableEntity)
	case errors.Is(err, ErrInvalidSelection):
		http.Error(w, "option out of range", http.StatusBadRequest)
	case errors.Is(err, ErrAttemptFinished):
		http.Error(w, "attempt already finished", http.StatusConflict)
	default:
		log.WithError(err).Error("Attempt operation failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// attemptFromRequest resolves {id} for the authenticated owner and writes the
// error response itself when it returns nil.
func (h *Handler) attemptFromRequest(w http.ResponseWriter, r *http.Request, log logrus.FieldLogger) *Attempt {
	s, err := auth.GetSessionFromContext(r.Context())
	if err != nil {
		log.Warn("User not authenticated")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return nil
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid attempt id", http.StatusBadRequest)
		return nil
	}

	a, err := h.manager.Get(s.UserID, id)
	if err != nil {
		writeError(w, log, err)
		return nil
	}
	return a
}

func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	s, err := auth.GetSessionFromContext(r.Context())
	if err != nil {
		log.Warn("User not authenticated")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var dto StartAttemptDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.Lang == "" {
		dto.Lang = "en"
	}

	a, err := h.manager.Start(r.Context(), s, dto.Category, dto.Lang)
	if err != nil {
		writeError(w, log, err)
		return
	}

	snap, err := a.Snapshot(r.Context())
	if err != nil {
		writeError(w, log, err)
		return
	}
	config.JSON(w, http.StatusCreated, snap)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	a := h.attemptFromRequest(w, r, log)
	if a == nil {
		return
	}

	snap, err := a.Snapshot(r.Context())
	if err != nil {
		writeError(w, log, err)
		return
	}
	config.JSON(w, http.StatusOK, snap)
}

func (h *Handler) SelectAnswer(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	a := h.attemptFromRequest(w, r, log)
	if a == nil {
		return
	}

	var dto SelectAnswerDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(dto); err != nil {
		http.Error(w, "option is required", http.StatusBadRequest)
		return
	}

	snap, err := a.SelectAnswer(r.Context(), *dto.Option)
	if err != nil {
		writeError(w, log, err)
		return
	}
	config.JSON(w, http.StatusOK, snap)
}

func (h *Handler) Advance(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	a := h.attemptFromRequest(w, r, log)
	if a == nil {
		return
	}

	var dto AdvanceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(dto); err != nil {
		http.Error(w, "direction must be forward or backward", http.StatusBadRequest)
		return
	}

	snap, err := a.Advance(r.Context(), dto.Direction)
	if err != nil {
		writeError(w, log, err)
		return
	}
	config.JSON(w, http.StatusOK, snap)
}

// Finish answers 409 with the original result when the attempt was already
// finished, either by an earlier call or by the timer.
func (h *Handler) Finish(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	a := h.attemptFromRequest(w, r, log)
	if a == nil {
		return
	}

	snap, err := a.Finish(r.Context())
	switch {
	case errors.Is(err, ErrAlreadyFinished):
		config.JSON(w, http.StatusConflict, snap)
	case err != nil:
		writeError(w, log, err)
	default:
		log.WithFields(logrus.Fields{
			"attempt_id": a.ID,
			"score":      snap.Result.Score,
			"total":      snap.Result.TotalQuestions,
		}).Info("Attempt finished")
		config.JSON(w, http.StatusOK, snap)
	}
}

func (h *Handler) Discard(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	s, err := auth.GetSessionFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid attempt id", http.StatusBadRequest)
		return
	}

	if err := h.manager.Discard(s.UserID, id); err != nil {
		writeError(w, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
