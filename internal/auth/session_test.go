package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/aptitude-lambda/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLifecycle(t *testing.T) {
	auth.Init(testSecret, time.Hour)
	m := auth.NewSessionManager()

	var tornDown []uuid.UUID
	m.OnTeardown(func(ctx context.Context, s auth.Session) {
		tornDown = append(tornDown, s.UserID)
	})

	userID := uuid.New()
	s, token, err := m.Init(userID, "Baraka", "baraka@example.com", "student")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, userID, s.UserID)
	assert.False(t, s.Guest())
	assert.False(t, m.IsRevoked(s.TokenID))

	claims, err := auth.ValidateJWT(token)
	require.NoError(t, err)
	fromClaims, err := auth.SessionFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, s.TokenID, fromClaims.TokenID)
	assert.Equal(t, "baraka@example.com", fromClaims.Email)

	m.Teardown(context.Background(), s)
	assert.True(t, m.IsRevoked(s.TokenID))
	assert.Equal(t, []uuid.UUID{userID}, tornDown)
}

func TestAuthMiddleware(t *testing.T) {
	auth.Init(testSecret, time.Hour)

	var seen auth.Session
	protected := auth.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, err := auth.GetSessionFromContext(r.Context())
		require.NoError(t, err)
		seen = s
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("MissingToken", func(t *testing.T) {
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("BearerToken", func(t *testing.T) {
		s, token, err := auth.Sessions.Init(uuid.New(), "Neema", "neema@example.com", "admin")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, s.UserID, seen.UserID)
		assert.True(t, seen.HasRole("admin"))
	})

	t.Run("RevokedToken", func(t *testing.T) {
		s, token, err := auth.Sessions.Init(uuid.New(), "Juma", "juma@example.com", "student")
		require.NoError(t, err)
		auth.Sessions.Teardown(context.Background(), s)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "jwt", Value: token})
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	h := auth.RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := auth.WithSession(req.Context(), &auth.Claims{}, auth.Session{UserID: uuid.New(), Role: "student"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPassword(t *testing.T) {
	hash, err := auth.HashPassword("s3cret-pass")
	require.NoError(t, err)

	assert.True(t, auth.CheckPassword(hash, "s3cret-pass"))
	assert.False(t, auth.CheckPassword(hash, "wrong"))
}
