package auth

import (
	"net/http"

	"github.com/saulo-duarte/aptitude-lambda/internal/config"
)

type CookieConfig struct {
	Domain string
	Secure bool
}

func (c CookieConfig) Set(w http.ResponseWriter, token string, s Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    token,
		Path:     "/",
		Domain:   c.Domain,
		Expires:  s.ExpiresAt,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c CookieConfig) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		Domain:   c.Domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

type Handler struct {
	sessions *SessionManager
	cookies  CookieConfig
}

func NewHandler(sessions *SessionManager, cookies CookieConfig) *Handler {
	return &Handler{sessions: sessions, cookies: cookies}
}

// Logout tears down the caller's session when the token is still valid and
// always clears the cookie.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	if tokenStr := tokenFromRequest(r); tokenStr != "" {
		if claims, err := ValidateJWT(tokenStr); err == nil {
			if s, err := SessionFromClaims(claims); err == nil {
				h.sessions.Teardown(r.Context(), s)
				log.WithField("user_id", s.UserID).Info("Session closed")
			}
		}
	}

	h.cookies.Clear(w)
	config.JSON(w, http.StatusOK, map[string]string{
		"message": "logout successful",
	})
}
