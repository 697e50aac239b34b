package result

import (
	"time"

	"github.com/google/uuid"
)

type TestResult struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Category       string    `gorm:"type:text;not null" json:"category"`
	Score          int       `gorm:"not null" json:"score"`
	TotalQuestions int       `gorm:"not null" json:"total_questions"`
	Accuracy       float64   `gorm:"not null" json:"accuracy"`
	TakenAt        time.Time `gorm:"not null;default:now();index" json:"taken_at"`
}

func (TestResult) TableName() string {
	return "test_results"
}

// Percent is the share of correct answers on a 0..100 scale.
func (r *TestResult) Percent() float64 {
	if r.TotalQuestions == 0 {
		return 0
	}
	return float64(r.Score) / float64(r.TotalQuestions) * 100
}
