package assessment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/aptitude-lambda/internal/auth"
	"github.com/saulo-duarte/aptitude-lambda/internal/category"
	"github.com/saulo-duarte/aptitude-lambda/internal/config"
)

var ErrAttemptNotFound = errors.New("attempt not found")

type Options struct {
	DurationSeconds int
	Retain          time.Duration
	SubmitTimeout   time.Duration
	NewTicker       NewTickerFunc
	Now             func() time.Time
}

// Manager keeps the live attempts of this process keyed by attempt ID.
type Manager struct {
	mu       sync.RWMutex
	attempts map[uuid.UUID]*Attempt
	source   QuestionSource
	sink     ResultSink
	opts     Options
}

func NewManager(source QuestionSource, sink ResultSink, opts Options) *Manager {
	if opts.DurationSeconds <= 0 {
		opts.DurationSeconds = DefaultDurationSeconds
	}
	if opts.NewTicker == nil {
		opts.NewTicker = NewTimeTicker
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Manager{
		attempts: make(map[uuid.UUID]*Attempt),
		source:   source,
		sink:     sink,
		opts:     opts,
	}
}

func (m *Manager) Start(ctx context.Context, s auth.Session, categoryID, lang string) (*Attempt, error) {
	log := config.WithContext(ctx).WithField("user_id", s.UserID)

	cat, err := category.Lookup(categoryID)
	if err != nil {
		log.WithField("category", categoryID).Warn("Attempt requested for unknown category")
		return nil, err
	}

	m.Sweep(ctx)

	questions, err := m.source.QuestionsForCategory(ctx, cat.ID, lang)
	if err != nil {
		log.WithError(err).Error("Failed to load questions")
		return nil, fmt.Errorf("load questions: %w", err)
	}

	runner := NewRunner(m.opts.DurationSeconds)
	if err := runner.Start(questions); err != nil {
		log.WithError(err).WithField("category", cat.ID).Warn("Attempt could not start")
		return nil, err
	}

	a := newAttempt(attemptConfig{
		id:            uuid.New(),
		ownerID:       s.UserID,
		category:      cat.ID,
		lang:          lang,
		runner:        runner,
		sink:          m.sink,
		submitTimeout: m.opts.SubmitTimeout,
		newTicker:     m.opts.NewTicker,
		now:           m.opts.Now,
	})

	m.mu.Lock()
	m.attempts[a.ID] = a
	m.mu.Unlock()

	log.WithField("attempt_id", a.ID).WithField("category", cat.ID).Info("Attempt started")
	return a, nil
}

func (m *Manager) Get(ownerID, id uuid.UUID) (*Attempt, error) {
	m.mu.RLock()
	a, ok := m.attempts[id]
	m.mu.RUnlock()
	if !ok || a.OwnerID != ownerID {
		return nil, ErrAttemptNotFound
	}
	return a, nil
}

// Discard stops the attempt and forgets it.
func (m *Manager) Discard(ownerID, id uuid.UUID) error {
	m.mu.Lock()
	a, ok := m.attempts[id]
	if !ok || a.OwnerID != ownerID {
		m.mu.Unlock()
		return ErrAttemptNotFound
	}
	delete(m.attempts, id)
	m.mu.Unlock()

	a.Abandon()
	return nil
}

// DiscardOwner drops every attempt of the session's user. It is registered
// as a session teardown hook.
func (m *Manager) DiscardOwner(ctx context.Context, s auth.Session) {
	var dropped []*Attempt

	m.mu.Lock()
	for id, a := range m.attempts {
		if a.OwnerID == s.UserID {
			dropped = append(dropped, a)
			delete(m.attempts, id)
		}
	}
	m.mu.Unlock()

	for _, a := range dropped {
		a.Abandon()
	}
	if len(dropped) > 0 {
		config.WithContext(ctx).WithField("user_id", s.UserID).Infof("Discarded %d attempts on sign-out", len(dropped))
	}
}

// Sweep forgets attempts that finished more than Retain ago and returns how
// many were removed. A zero Retain keeps finished attempts until discarded.
func (m *Manager) Sweep(ctx context.Context) int {
	if m.opts.Retain <= 0 {
		return 0
	}

	m.mu.RLock()
	candidates := make([]*Attempt, 0, len(m.attempts))
	for _, a := range m.attempts {
		candidates = append(candidates, a)
	}
	m.mu.RUnlock()

	cutoff := m.opts.Now().Add(-m.opts.Retain)
	removed := 0
	for _, a := range candidates {
		snap, err := a.Snapshot(ctx)
		stale := errors.Is(err, ErrAttemptClosed) ||
			(err == nil && snap.FinishedAt != nil && snap.FinishedAt.Before(cutoff))
		if !stale {
			continue
		}
		m.mu.Lock()
		delete(m.attempts, a.ID)
		m.mu.Unlock()
		a.Abandon()
		removed++
	}
	return removed
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.attempts)
}

// Close abandons every live attempt.
func (m *Manager) Close() {
	m.mu.Lock()
	all := m.attempts
	m.attempts = make(map[uuid.UUID]*Attempt)
	m.mu.Unlock()

	for _, a := range all {
		a.Abandon()
	}
}
