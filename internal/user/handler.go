package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/saulo-duarte/aptitude-lambda/internal/auth"
	"github.com/saulo-duarte/aptitude-lambda/internal/config"
	"github.com/saulo-duarte/aptitude-lambda/internal/result"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	service  UserService
	results  result.ResultService
	sessions *auth.SessionManager
	cookies  auth.CookieConfig
}

func NewHandler(s UserService, results result.ResultService, sessions *auth.SessionManager, cookies auth.CookieConfig) *Handler {
	return &Handler{service: s, results: results, sessions: sessions, cookies: cookies}
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request, u *User, status int) {
	log := config.WithContext(r.Context())

	s, token, err := h.sessions.Init(u.ID, u.Name, u.Email, string(u.Role))
	if err != nil {
		log.WithError(err).Error("Failed to open session")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	h.cookies.Set(w, token, s)

	config.JSON(w, status, AuthResponse{
		Success: true,
		Token:   token,
		User:    ToResponse(u),
	})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid request body for register")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	u, err := h.service.Register(r.Context(), dto)
	switch {
	case errors.Is(err, ErrEmailTaken):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case errors.Is(err, ErrMissingFields), errors.Is(err, ErrInvalidEmail), errors.Is(err, ErrWeakPassword),
		errors.Is(err, ErrPasswordTooLong):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.signIn(w, r, u, http.StatusCreated)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid request body for login")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	u, err := h.service.Login(r.Context(), dto)
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	case errors.Is(err, ErrMissingFields):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.signIn(w, r, u, http.StatusOK)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	s, err := auth.GetSessionFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	u, err := h.service.GetByID(r.Context(), s.UserID)
	if errors.Is(err, ErrUserNotFound) {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, ToResponse(u))
}

// Dashboard serves another user's dashboard to admins; everyone else may
// only read their own.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	s, err := auth.GetSessionFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}
	if id != s.UserID && !s.HasRole(auth.RoleAdmin) {
		log.WithFields(logrus.Fields{"user_id": s.UserID, "target": id}).Warn("Dashboard access denied")
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	dash, err := h.results.Dashboard(r.Context(), id)
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	config.JSON(w, http.StatusOK, dash)
}
