package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidSession = errors.New("invalid session")

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
	RoleMentor  = "mentor"
)

// Session is the signed-in user as seen by handlers and services. It is
// created by SessionManager.Init on sign-in and ended by Teardown on sign-out.
type Session struct {
	UserID    uuid.UUID
	Name      string
	Email     string
	Role      string
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

func (s Session) Guest() bool {
	return s.UserID == uuid.Nil
}

func (s Session) HasRole(roles ...string) bool {
	for _, r := range roles {
		if s.Role == r {
			return true
		}
	}
	return false
}

func SessionFromClaims(c *Claims) (Session, error) {
	if c == nil {
		return Session{}, ErrInvalidSession
	}
	id, err := uuid.Parse(c.UserID)
	if err != nil {
		return Session{}, ErrInvalidSession
	}
	s := Session{
		UserID:  id,
		Name:    c.Name,
		Email:   c.Email,
		Role:    c.Role,
		TokenID: c.ID,
	}
	if c.IssuedAt != nil {
		s.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		s.ExpiresAt = c.ExpiresAt.Time
	}
	return s, nil
}

type TeardownHook func(ctx context.Context, s Session)

type SessionManager struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	hooks   []TeardownHook
	now     func() time.Time
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Sessions is the process-wide manager used by AuthMiddleware.
var Sessions = NewSessionManager()

// Init opens a session for the user and returns it with its signed token.
func (m *SessionManager) Init(userID uuid.UUID, name, email, role string) (Session, string, error) {
	now := m.now()
	s := Session{
		UserID:    userID,
		Name:      name,
		Email:     email,
		Role:      role,
		TokenID:   uuid.NewString(),
		IssuedAt:  now,
		ExpiresAt: now.Add(tokenTTL),
	}
	token, err := GenerateJWT(s)
	if err != nil {
		return Session{}, "", err
	}
	return s, token, nil
}

// Teardown revokes the session's token until it expires and runs the
// registered hooks.
func (m *SessionManager) Teardown(ctx context.Context, s Session) {
	m.mu.Lock()
	if s.TokenID != "" {
		exp := s.ExpiresAt
		if exp.IsZero() {
			exp = m.now().Add(tokenTTL)
		}
		m.revoked[s.TokenID] = exp
	}
	hooks := make([]TeardownHook, len(m.hooks))
	copy(hooks, m.hooks)
	m.mu.Unlock()

	for _, h := range hooks {
		h(ctx, s)
	}
}

func (m *SessionManager) OnTeardown(h TeardownHook) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooks = append(m.hooks, h)
}

func (m *SessionManager) IsRevoked(tokenID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for id, exp := range m.revoked {
		if now.After(exp) {
			delete(m.revoked, id)
		}
	}
	_, ok := m.revoked[tokenID]
	return ok
}
