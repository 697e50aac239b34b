package question

type CreateQuestionDTO struct {
	Category     string     `json:"category" validate:"required"`
	Difficulty   Difficulty `json:"difficulty" validate:"omitempty,oneof=foundational beginner intermediate advanced expert"`
	CorrectIndex *int       `json:"correct_index" validate:"required,min=0"`
	Content      Content    `json:"content"`
}

type CreateQuestionsDTO struct {
	Questions []CreateQuestionDTO `json:"questions" validate:"required,min=1,dive"`
}

func (d CreateQuestionDTO) toQuestion() *Question {
	return New(d.Category, d.Content, *d.CorrectIndex, d.Difficulty)
}

// BankEntry is the listed shape of a stored question. Correct and the
// explanations are only filled in for admins and mentors.
type BankEntry struct {
	ID         string     `json:"id"`
	EN         string     `json:"en"`
	SW         string     `json:"sw,omitempty"`
	Options    []string   `json:"options"`
	OptionsSW  []string   `json:"options_sw,omitempty"`
	Correct    *int       `json:"correct,omitempty"`
	ExplEN     string     `json:"expl,omitempty"`
	ExplSW     string     `json:"expl_sw,omitempty"`
	Difficulty Difficulty `json:"difficulty"`
}

func toBankEntry(q *Question, withAnswer bool) BankEntry {
	c := q.Content.Data()
	e := BankEntry{
		ID:         q.ID.String(),
		EN:         c.EN.Q,
		SW:         c.SW.Q,
		Options:    c.EN.Options,
		OptionsSW:  c.SW.Options,
		Difficulty: q.Difficulty,
	}
	if withAnswer {
		correct := q.CorrectIndex
		e.Correct = &correct
		e.ExplEN = c.EN.Expl
		e.ExplSW = c.SW.Expl
	}
	return e
}
