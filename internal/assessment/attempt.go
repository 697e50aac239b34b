package assessment

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/aptitude-lambda/internal/config"
)

var ErrAttemptClosed = errors.New("attempt closed")

// Attempt owns one Runner on a dedicated goroutine. User commands and timer
// ticks are applied one at a time; a tick already delivered is applied before
// the next command, and the ticker stops once the runner finishes.
//
// The countdown follows the attempt's clock: every whole second since the
// start is applied exactly once, so seconds the ticker missed (a paused
// process) are caught up before the next command.
type Attempt struct {
	ID       uuid.UUID
	OwnerID  uuid.UUID
	Category string
	Lang     string

	runner        *Runner
	sink          ResultSink
	submitTimeout time.Duration
	now           func() time.Time

	// owned by the loop goroutine
	startedAt  time.Time
	elapsed    int
	finishedAt time.Time
	dispatched bool
	status     SubmissionStatus
	notice     string

	cmds      chan func()
	submitted chan error
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

type attemptConfig struct {
	id            uuid.UUID
	ownerID       uuid.UUID
	category      string
	lang          string
	runner        *Runner
	sink          ResultSink
	submitTimeout time.Duration
	newTicker     NewTickerFunc
	now           func() time.Time
}

func newAttempt(cfg attemptConfig) *Attempt {
	if cfg.now == nil {
		cfg.now = time.Now
	}
	a := &Attempt{
		ID:            cfg.id,
		OwnerID:       cfg.ownerID,
		Category:      cfg.category,
		Lang:          cfg.lang,
		runner:        cfg.runner,
		sink:          cfg.sink,
		submitTimeout: cfg.submitTimeout,
		now:           cfg.now,
		startedAt:     cfg.now(),
		cmds:          make(chan func()),
		submitted:     make(chan error, 1),
		quit:          make(chan struct{}),
		done:          make(chan struct{}),
	}
	var ticker Ticker
	if cfg.newTicker != nil {
		ticker = cfg.newTicker(time.Second)
	}
	go a.loop(ticker)
	return a
}

func (a *Attempt) loop(ticker Ticker) {
	defer close(a.done)

	var tickC <-chan time.Time
	if ticker != nil {
		tickC = ticker.C()
	}
	stop := func() {
		if ticker != nil {
			ticker.Stop()
			ticker = nil
			tickC = nil
		}
	}
	defer stop()

	for {
		select {
		case <-a.quit:
			return
		case <-tickC:
			a.catchUp()
		case cmd := <-a.cmds:
			select {
			case <-tickC:
			default:
			}
			a.catchUp()
			if a.runner.Finished() {
				stop()
				a.dispatch()
			}
			cmd()
		case err := <-a.submitted:
			a.recordSubmission(err)
		}

		if a.runner.Finished() {
			stop()
			a.dispatch()
		}
	}
}

// catchUp ticks the runner once for every whole second since the start it
// has not seen yet.
func (a *Attempt) catchUp() {
	due := int(a.now().Sub(a.startedAt) / time.Second)
	for a.elapsed < due && !a.runner.Finished() {
		a.runner.Tick()
		a.elapsed++
	}
}

func (a *Attempt) dispatch() {
	if a.dispatched {
		return
	}
	a.dispatched = true
	a.finishedAt = a.now()

	if a.sink == nil || a.OwnerID == uuid.Nil {
		a.status = SubmissionSkipped
		return
	}

	res := a.runner.Result()
	sub := Submission{
		OwnerID:        a.OwnerID,
		Category:       a.Category,
		Score:          res.Score,
		TotalQuestions: res.TotalQuestions,
		Accuracy:       res.Accuracy,
	}
	a.status = SubmissionPending

	sink, timeout, out := a.sink, a.submitTimeout, a.submitted
	go func() {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		out <- sink.Submit(ctx, sub)
	}()
}

func (a *Attempt) recordSubmission(err error) {
	log := config.WithContext(context.Background()).WithField("attempt_id", a.ID)
	if err != nil {
		log.WithError(err).Warn("Failed to save attempt result")
		a.status = SubmissionFailed
		a.notice = "your result could not be saved; the score shown is still valid"
		return
	}
	a.status = SubmissionSaved
	a.notice = ""
}

// do runs fn on the loop goroutine and waits for it to return.
func (a *Attempt) do(ctx context.Context, fn func()) error {
	ran := make(chan struct{})
	select {
	case a.cmds <- func() { fn(); close(ran) }:
	case <-a.done:
		return ErrAttemptClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	<-ran
	return nil
}

func (a *Attempt) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	err := a.do(ctx, func() { snap = a.snapshot() })
	return snap, err
}

func (a *Attempt) SelectAnswer(ctx context.Context, option int) (Snapshot, error) {
	var (
		snap   Snapshot
		cmdErr error
	)
	if err := a.do(ctx, func() {
		cmdErr = a.runner.SelectAnswer(option)
		snap = a.snapshot()
	}); err != nil {
		return Snapshot{}, err
	}
	return snap, cmdErr
}

func (a *Attempt) Advance(ctx context.Context, dir Direction) (Snapshot, error) {
	var (
		snap   Snapshot
		cmdErr error
	)
	if err := a.do(ctx, func() {
		_, cmdErr = a.runner.Advance(dir)
		snap = a.snapshot()
	}); err != nil {
		return Snapshot{}, err
	}
	return snap, cmdErr
}

// Finish completes the attempt. On a repeated call the snapshot still carries
// the original result and the error is ErrAlreadyFinished.
func (a *Attempt) Finish(ctx context.Context) (Snapshot, error) {
	var (
		snap   Snapshot
		cmdErr error
	)
	if err := a.do(ctx, func() {
		_, cmdErr = a.runner.Finish()
		if cmdErr == nil {
			a.dispatch()
		}
		snap = a.snapshot()
	}); err != nil {
		return Snapshot{}, err
	}
	return snap, cmdErr
}

// Abandon stops the loop and its ticker. Safe to call more than once.
func (a *Attempt) Abandon() {
	a.closeOnce.Do(func() { close(a.quit) })
	<-a.done
}

func (a *Attempt) Done() <-chan struct{} {
	return a.done
}
