package assessment

import (
	"time"

	"github.com/google/uuid"
)

type QuestionView struct {
	Index   int      `json:"index"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// ReviewItem is only exposed once the attempt is finished.
type ReviewItem struct {
	Text         string   `json:"text"`
	Options      []string `json:"options"`
	Selected     *int     `json:"selected"`
	CorrectIndex int      `json:"correct_index"`
	Correct      bool     `json:"correct"`
	Explanation  string   `json:"explanation,omitempty"`
}

type ResultView struct {
	Result
	RoundedAccuracy float64 `json:"rounded_accuracy"`
	Percent         int     `json:"percent"`
}

type Snapshot struct {
	ID               uuid.UUID        `json:"id"`
	Category         string           `json:"category"`
	Lang             string           `json:"lang"`
	State            State            `json:"state"`
	CurrentIndex     int              `json:"current_index"`
	TotalQuestions   int              `json:"total_questions"`
	RemainingSeconds int              `json:"remaining_seconds"`
	Question         *QuestionView    `json:"question,omitempty"`
	Answers          []*int           `json:"answers"`
	Result           *ResultView      `json:"result,omitempty"`
	Review           []ReviewItem     `json:"review,omitempty"`
	Submission       SubmissionStatus `json:"submission,omitempty"`
	Notice           string           `json:"notice,omitempty"`
	StartedAt        time.Time        `json:"started_at"`
	FinishedAt       *time.Time       `json:"finished_at,omitempty"`
}

func answerPtr(v int) *int {
	if v == Unanswered {
		return nil
	}
	return &v
}

func (a *Attempt) snapshot() Snapshot {
	r := a.runner
	answers := r.Answers()

	snap := Snapshot{
		ID:               a.ID,
		Category:         a.Category,
		Lang:             a.Lang,
		State:            r.State(),
		CurrentIndex:     r.CurrentIndex(),
		TotalQuestions:   r.Len(),
		RemainingSeconds: r.RemainingSeconds(),
		Answers:          make([]*int, len(answers)),
		Submission:       a.status,
		Notice:           a.notice,
		StartedAt:        a.startedAt,
	}
	for i, v := range answers {
		snap.Answers[i] = answerPtr(v)
	}

	if !r.Finished() {
		if q, ok := r.Question(r.CurrentIndex()); ok {
			snap.Question = &QuestionView{
				Index:   r.CurrentIndex(),
				Text:    q.Text,
				Options: append([]string(nil), q.Options...),
			}
		}
		return snap
	}

	res := r.Result()
	snap.Result = &ResultView{
		Result:          res,
		RoundedAccuracy: res.RoundedAccuracy(),
		Percent:         res.Percent(),
	}
	if !a.finishedAt.IsZero() {
		t := a.finishedAt
		snap.FinishedAt = &t
	}
	snap.Review = make([]ReviewItem, 0, r.Len())
	for i := 0; i < r.Len(); i++ {
		q, _ := r.Question(i)
		snap.Review = append(snap.Review, ReviewItem{
			Text:         q.Text,
			Options:      append([]string(nil), q.Options...),
			Selected:     answerPtr(answers[i]),
			CorrectIndex: q.CorrectIndex,
			Correct:      answers[i] == q.CorrectIndex,
			Explanation:  q.Explanation,
		})
	}
	return snap
}
