package result

import (
	"github.com/google/uuid"
	util "github.com/saulo-duarte/aptitude-lambda/internal/utils"
)

type SubmitResultDTO struct {
	Category       string  `json:"category" validate:"required,category"`
	Score          int     `json:"score" validate:"gte=0,ltefield=TotalQuestions"`
	TotalQuestions int     `json:"total_questions" validate:"gte=1"`
	Accuracy       float64 `json:"accuracy" validate:"gte=0,lte=100"`
}

type Stats struct {
	TestsTaken   int `json:"tests_taken"`
	AverageScore int `json:"average_score"`
}

type HistoryItem struct {
	ID             uuid.UUID          `json:"id"`
	Category       string             `json:"category"`
	Score          int                `json:"score"`
	TotalQuestions int                `json:"total_questions"`
	Accuracy       float64            `json:"accuracy"`
	TakenAt        util.LocalDateTime `json:"taken_at"`
}

type DashboardResponse struct {
	Stats   Stats         `json:"stats"`
	History []HistoryItem `json:"history"`
}

func toHistoryItem(r *TestResult) HistoryItem {
	return HistoryItem{
		ID:             r.ID,
		Category:       r.Category,
		Score:          r.Score,
		TotalQuestions: r.TotalQuestions,
		Accuracy:       r.Accuracy,
		TakenAt:        util.NewLocalDateTime(r.TakenAt),
	}
}
