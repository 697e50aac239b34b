package aiquiz

import "github.com/saulo-duarte/aptitude-lambda/internal/question"

// Draft is one question as the model returns it.
type Draft struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
	QuestionSW  string   `json:"question_sw,omitempty"`
	OptionsSW   []string `json:"options_sw,omitempty"`
}

type GenerateRequest struct {
	Category   string              `json:"category" validate:"required"`
	Difficulty question.Difficulty `json:"difficulty" validate:"omitempty,oneof=foundational beginner intermediate advanced expert"`
	Count      int                 `json:"count" validate:"gte=0"`
	Context    string              `json:"context" validate:"max=2000"`
	Save       bool                `json:"save"`
}

type GenerateResponse struct {
	Questions []*question.Question `json:"questions"`
	Rejected  int                  `json:"rejected"`
	Saved     bool                 `json:"saved"`
}
