package assessment_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/saulo-duarte/aptitude-lambda/internal/assessment"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// manualTicker moves its clock forward one second per tick.
type manualTicker struct {
	c       chan time.Time
	stopped chan struct{}
	once    sync.Once
	clock   *fakeClock
}

func newManualTicker(clock *fakeClock) *manualTicker {
	return &manualTicker{c: make(chan time.Time), stopped: make(chan struct{}), clock: clock}
}

func (m *manualTicker) C() <-chan time.Time { return m.c }

func (m *manualTicker) Stop() { m.once.Do(func() { close(m.stopped) }) }

// tick blocks until the attempt loop has received the tick.
func (m *manualTicker) tick(t *testing.T) {
	t.Helper()
	if m.clock != nil {
		m.clock.Advance(time.Second)
	}
	select {
	case m.c <- time.Now():
	case <-m.stopped:
		t.Fatal("tick sent to a stopped ticker")
	case <-time.After(time.Second):
		t.Fatal("tick was not consumed")
	}
}

func (m *manualTicker) isStopped() bool {
	select {
	case <-m.stopped:
		return true
	default:
		return false
	}
}

type fakeSource struct {
	questions []assessment.Question
	err       error
}

func (f *fakeSource) QuestionsForCategory(ctx context.Context, category, lang string) ([]assessment.Question, error) {
	return f.questions, f.err
}

type fakeSink struct {
	mu   sync.Mutex
	subs []assessment.Submission
	err  error
}

func (f *fakeSink) Submit(ctx context.Context, s assessment.Submission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs = append(f.subs, s)
	return f.err
}

func (f *fakeSink) submissions() []assessment.Submission {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]assessment.Submission, len(f.subs))
	copy(out, f.subs)
	return out
}

var errSinkDown = errors.New("sink unreachable")

type harness struct {
	manager *assessment.Manager
	sink    *fakeSink
	source  *fakeSource
	clock   *fakeClock
	tickers chan *manualTicker
}

func newHarness(duration int) *harness {
	h := &harness{
		sink:    &fakeSink{},
		source:  &fakeSource{questions: threeQuestions()},
		clock:   newFakeClock(),
		tickers: make(chan *manualTicker, 8),
	}
	h.manager = assessment.NewManager(h.source, h.sink, assessment.Options{
		DurationSeconds: duration,
		SubmitTimeout:   time.Second,
		NewTicker: func(time.Duration) assessment.Ticker {
			mt := newManualTicker(h.clock)
			h.tickers <- mt
			return mt
		},
		Now: h.clock.Now,
	})
	return h
}

func (h *harness) lastTicker(t *testing.T) *manualTicker {
	t.Helper()
	select {
	case mt := <-h.tickers:
		return mt
	default:
		t.Fatal("no ticker created")
		return nil
	}
}
