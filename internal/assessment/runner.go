package assessment

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyQuestionList = errors.New("question list is empty")
	ErrInvalidQuestion   = errors.New("invalid question")
	ErrAlreadyStarted    = errors.New("attempt already started")
	ErrNotStarted        = errors.New("attempt not started")
	ErrInvalidSelection  = errors.New("option index out of range")
	ErrAttemptFinished   = errors.New("attempt already finished")
	ErrAlreadyFinished   = errors.New("finish already requested")
)

// Runner is the state machine of a single attempt. It is not safe for
// concurrent use; Attempt serialises every call through one goroutine.
type Runner struct {
	questions []Question
	answers   []int
	current   int
	remaining int
	duration  int
	state     State
	result    Result
}

func NewRunner(durationSeconds int) *Runner {
	if durationSeconds <= 0 {
		durationSeconds = DefaultDurationSeconds
	}
	return &Runner{duration: durationSeconds, state: NotStarted}
}

func validateQuestion(i int, q Question) error {
	if len(q.Options) == 0 {
		return fmt.Errorf("%w: question %d has no options", ErrInvalidQuestion, i)
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("%w: question %d correct index %d outside [0,%d)", ErrInvalidQuestion, i, q.CorrectIndex, len(q.Options))
	}
	return nil
}

func (r *Runner) Start(questions []Question) error {
	if r.state != NotStarted {
		return ErrAlreadyStarted
	}
	if len(questions) == 0 {
		return ErrEmptyQuestionList
	}
	for i, q := range questions {
		if err := validateQuestion(i, q); err != nil {
			return err
		}
	}

	r.questions = make([]Question, len(questions))
	copy(r.questions, questions)
	r.answers = make([]int, len(questions))
	for i := range r.answers {
		r.answers[i] = Unanswered
	}
	r.current = 0
	r.remaining = r.duration
	r.state = InProgress
	return nil
}

func (r *Runner) checkActive() error {
	switch r.state {
	case NotStarted:
		return ErrNotStarted
	case Finished:
		return ErrAttemptFinished
	}
	return nil
}

// SelectAnswer records option for the current question, replacing any earlier choice.
func (r *Runner) SelectAnswer(option int) error {
	if err := r.checkActive(); err != nil {
		return err
	}
	if option < 0 || option >= len(r.questions[r.current].Options) {
		return ErrInvalidSelection
	}
	r.answers[r.current] = option
	return nil
}

// Advance moves one question in dir and reports whether the index changed.
// Forward stops at the last question and Backward at the first.
func (r *Runner) Advance(dir Direction) (bool, error) {
	if err := r.checkActive(); err != nil {
		return false, err
	}
	switch dir {
	case Forward:
		if r.current >= len(r.questions)-1 {
			return false, nil
		}
		r.current++
	case Backward:
		if r.current == 0 {
			return false, nil
		}
		r.current--
	default:
		return false, fmt.Errorf("unknown direction %q", dir)
	}
	return true, nil
}

// Tick consumes one second. It reports true when this tick ran the clock out
// and finished the attempt. Ticks outside InProgress are dropped.
func (r *Runner) Tick() bool {
	if r.state != InProgress {
		return false
	}
	if r.remaining > 0 {
		r.remaining--
	}
	if r.remaining == 0 {
		r.complete(ReasonTimeout)
		return true
	}
	return false
}

// Finish scores the attempt. A second call returns the first result with
// ErrAlreadyFinished.
func (r *Runner) Finish() (Result, error) {
	switch r.state {
	case NotStarted:
		return Result{}, ErrNotStarted
	case Finished:
		return r.result, ErrAlreadyFinished
	}
	r.complete(ReasonSubmitted)
	return r.result, nil
}

func (r *Runner) complete(reason FinishReason) {
	score := 0
	for i, q := range r.questions {
		if r.answers[i] == q.CorrectIndex {
			score++
		}
	}

	accuracy := 0.0
	if len(r.questions) > 0 {
		accuracy = float64(score) / float64(len(r.questions)) * 100
	}

	r.result = Result{
		Score:          score,
		TotalQuestions: len(r.questions),
		Accuracy:       accuracy,
		ElapsedSeconds: r.duration - r.remaining,
		Reason:         reason,
	}
	r.state = Finished
}

func (r *Runner) State() State          { return r.state }
func (r *Runner) Finished() bool        { return r.state == Finished }
func (r *Runner) CurrentIndex() int     { return r.current }
func (r *Runner) RemainingSeconds() int { return r.remaining }
func (r *Runner) Len() int              { return len(r.questions) }

// Result is the zero value until the attempt finishes.
func (r *Runner) Result() Result { return r.result }

// Answers returns a copy of the answer slots; Unanswered marks unset ones.
func (r *Runner) Answers() []int {
	out := make([]int, len(r.answers))
	copy(out, r.answers)
	return out
}

func (r *Runner) Question(i int) (Question, bool) {
	if i < 0 || i >= len(r.questions) {
		return Question{}, false
	}
	return r.questions[i], true
}
