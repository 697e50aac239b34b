package question

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/aptitude-lambda/internal/category"
	"gorm.io/datatypes"
)

var ErrInvalidQuestion = errors.New("invalid question")

type Localized struct {
	Q       string   `json:"q" yaml:"q"`
	Expl    string   `json:"expl,omitempty" yaml:"expl"`
	Options []string `json:"options" yaml:"options"`
}

type Content struct {
	EN Localized `json:"en" yaml:"en"`
	SW Localized `json:"sw" yaml:"sw"`
}

type Question struct {
	ID           uuid.UUID                   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Category     string                      `gorm:"type:text;not null;index" json:"category"`
	Content      datatypes.JSONType[Content] `gorm:"type:jsonb;not null" json:"content"`
	CorrectIndex int                         `gorm:"not null" json:"correct_index"`
	Difficulty   Difficulty                  `gorm:"type:text;not null;default:beginner" json:"difficulty"`
	OrderIndex   int                         `gorm:"not null;default:0" json:"order_index"`
	CreatedAt    time.Time                   `gorm:"autoCreateTime" json:"created_at"`
}

func New(categoryID string, content Content, correctIndex int, difficulty Difficulty) *Question {
	return &Question{
		Category:     category.Normalize(categoryID),
		Content:      datatypes.NewJSONType(content),
		CorrectIndex: correctIndex,
		Difficulty:   difficulty,
	}
}

// Localize picks the text for lang, falling back to English for any part the
// translation leaves empty.
func (q *Question) Localize(lang string) Localized {
	c := q.Content.Data()
	if lang != "sw" {
		return c.EN
	}
	out := c.SW
	if strings.TrimSpace(out.Q) == "" {
		out.Q = c.EN.Q
	}
	if out.Expl == "" {
		out.Expl = c.EN.Expl
	}
	if len(out.Options) == 0 {
		out.Options = c.EN.Options
	}
	return out
}

// Validate normalises the category and difficulty and checks the invariants
// the assessment runner relies on.
func (q *Question) Validate() error {
	q.Category = category.Normalize(q.Category)
	if !category.IsValid(q.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidQuestion, q.Category)
	}
	if q.Difficulty == "" {
		q.Difficulty = Beginner
	}
	if !q.Difficulty.IsValid() {
		return fmt.Errorf("%w: unknown difficulty %q", ErrInvalidQuestion, q.Difficulty)
	}

	c := q.Content.Data()
	if strings.TrimSpace(c.EN.Q) == "" {
		return fmt.Errorf("%w: english text is required", ErrInvalidQuestion)
	}
	if len(c.EN.Options) < 2 {
		return fmt.Errorf("%w: at least two options are required", ErrInvalidQuestion)
	}
	for i, o := range c.EN.Options {
		if strings.TrimSpace(o) == "" {
			return fmt.Errorf("%w: option %d is empty", ErrInvalidQuestion, i)
		}
	}
	if len(c.SW.Options) > 0 && len(c.SW.Options) != len(c.EN.Options) {
		return fmt.Errorf("%w: swahili options must match english options", ErrInvalidQuestion)
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(c.EN.Options) {
		return fmt.Errorf("%w: correct index %d outside [0,%d)", ErrInvalidQuestion, q.CorrectIndex, len(c.EN.Options))
	}
	return nil
}
