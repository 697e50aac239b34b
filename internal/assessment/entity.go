package assessment

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
)

// DefaultDurationSeconds is the countdown of a new attempt when none is configured.
const DefaultDurationSeconds = 600

// Unanswered marks an answer slot with no recorded choice. It never equals a
// valid option index.
const Unanswered = -1

type Question struct {
	Text         string
	Options      []string
	CorrectIndex int
	Explanation  string
}

type Direction string

const (
	Forward  Direction = "forward"
	Backward Direction = "backward"
)

func (d Direction) IsValid() bool {
	return d == Forward || d == Backward
}

type State string

const (
	NotStarted State = "NOT_STARTED"
	InProgress State = "IN_PROGRESS"
	Finished   State = "FINISHED"
)

type FinishReason string

const (
	ReasonSubmitted FinishReason = "submitted"
	ReasonTimeout   FinishReason = "timeout"
)

type Result struct {
	Score          int          `json:"score"`
	TotalQuestions int          `json:"total_questions"`
	Accuracy       float64      `json:"accuracy"`
	ElapsedSeconds int          `json:"elapsed_seconds"`
	Reason         FinishReason `json:"reason"`
}

// RoundedAccuracy is Accuracy rounded to two decimals.
func (r Result) RoundedAccuracy() float64 {
	return math.Round(r.Accuracy*100) / 100
}

// Percent is the whole-number accuracy shown on the result screen.
func (r Result) Percent() int {
	return int(math.Round(r.Accuracy))
}

// Submission is what a finished attempt hands to the ResultSink.
type Submission struct {
	OwnerID        uuid.UUID
	Category       string
	Score          int
	TotalQuestions int
	Accuracy       float64
}

type SubmissionStatus string

const (
	SubmissionNone    SubmissionStatus = ""
	SubmissionPending SubmissionStatus = "pending"
	SubmissionSaved   SubmissionStatus = "saved"
	SubmissionFailed  SubmissionStatus = "failed"
	SubmissionSkipped SubmissionStatus = "skipped"
)

type QuestionSource interface {
	QuestionsForCategory(ctx context.Context, category, lang string) ([]Question, error)
}

type ResultSink interface {
	Submit(ctx context.Context, s Submission) error
}

// Ticker delivers the once-per-second countdown signal to an attempt.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type NewTickerFunc func(d time.Duration) Ticker

type timeTicker struct {
	t *time.Ticker
}

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

func NewTimeTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}
