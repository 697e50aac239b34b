package result

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/saulo-duarte/aptitude-lambda/internal/assessment"
	"github.com/saulo-duarte/aptitude-lambda/internal/category"
	"github.com/saulo-duarte/aptitude-lambda/internal/config"
	"github.com/sirupsen/logrus"
)

const HistorySize = 5

var (
	ErrInvalidResult = errors.New("invalid result")
	ErrNoOwner       = errors.New("result has no owner")
)

type ResultService interface {
	assessment.ResultSink
	SubmitResult(ctx context.Context, userID uuid.UUID, dto SubmitResultDTO) (*TestResult, error)
	Dashboard(ctx context.Context, userID uuid.UUID) (*DashboardResponse, error)
}

type resultService struct {
	repo     ResultRepository
	validate *validator.Validate
	now      func() time.Time
}

func NewService(repo ResultRepository) ResultService {
	return &resultService{
		repo:     repo,
		validate: newValidator(),
		now:      time.Now,
	}
}

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return category.IsValid(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// Submit records a finished attempt.
func (s *resultService) Submit(ctx context.Context, sub assessment.Submission) error {
	_, err := s.SubmitResult(ctx, sub.OwnerID, SubmitResultDTO{
		Category:       sub.Category,
		Score:          sub.Score,
		TotalQuestions: sub.TotalQuestions,
		Accuracy:       sub.Accuracy,
	})
	return err
}

func (s *resultService) SubmitResult(ctx context.Context, userID uuid.UUID, dto SubmitResultDTO) (*TestResult, error) {
	log := config.WithContext(ctx)

	if userID == uuid.Nil {
		return nil, ErrNoOwner
	}
	dto.Category = category.Normalize(dto.Category)
	if err := s.validate.Struct(dto); err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("Rejected result")
		return nil, fmt.Errorf("%w: %v", ErrInvalidResult, err)
	}

	res := &TestResult{
		ID:             uuid.New(),
		UserID:         userID,
		Category:       dto.Category,
		Score:          dto.Score,
		TotalQuestions: dto.TotalQuestions,
		Accuracy:       dto.Accuracy,
		TakenAt:        s.now(),
	}
	if err := s.repo.Create(ctx, res); err != nil {
		log.WithError(err).Error("Failed to save result")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"user_id":  userID,
		"category": res.Category,
		"score":    res.Score,
		"total":    res.TotalQuestions,
	}).Info("Result saved")
	return res, nil
}

func (s *resultService) Dashboard(ctx context.Context, userID uuid.UUID) (*DashboardResponse, error) {
	results, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		config.WithContext(ctx).WithError(err).WithField("user_id", userID).Error("Failed to load results")
		return nil, err
	}

	resp := &DashboardResponse{
		Stats:   Stats{TestsTaken: len(results), AverageScore: averagePercent(results)},
		History: make([]HistoryItem, 0, HistorySize),
	}
	for i, r := range results {
		if i == HistorySize {
			break
		}
		resp.History = append(resp.History, toHistoryItem(r))
	}
	return resp, nil
}

func averagePercent(results []*TestResult) int {
	if len(results) == 0 {
		return 0
	}
	var sum float64
	for _, r := range results {
		sum += r.Percent()
	}
	return int(math.Round(sum / float64(len(results))))
}
