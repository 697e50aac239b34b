package question

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/saulo-duarte/aptitude-lambda/internal/assessment"
	"github.com/saulo-duarte/aptitude-lambda/internal/category"
	"github.com/saulo-duarte/aptitude-lambda/internal/config"
)

type QuestionService interface {
	ListByCategory(ctx context.Context, categoryID string) ([]*Question, error)
	QuestionsForCategory(ctx context.Context, categoryID, lang string) ([]assessment.Question, error)
	CountByCategory(ctx context.Context) (map[string]int64, error)
	AddQuestions(ctx context.Context, questions []*Question) error
	ReplaceBank(ctx context.Context, questions []*Question) error
}

type questionService struct {
	repo QuestionRepository
}

func NewService(repo QuestionRepository) QuestionService {
	return &questionService{repo: repo}
}

func (s *questionService) ListByCategory(ctx context.Context, categoryID string) ([]*Question, error) {
	log := config.WithContext(ctx)

	cat, err := category.Lookup(categoryID)
	if err != nil {
		return nil, err
	}

	questions, err := s.repo.ListByCategory(ctx, cat.ID)
	if err != nil {
		log.WithError(err).WithField("category", cat.ID).Error("Failed to list questions")
		return nil, err
	}
	return questions, nil
}

// QuestionsForCategory serves the assessment runner. Stored rows that break
// the runner's invariants are skipped and logged rather than failing the attempt.
func (s *questionService) QuestionsForCategory(ctx context.Context, categoryID, lang string) ([]assessment.Question, error) {
	log := config.WithContext(ctx)

	records, err := s.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	out := make([]assessment.Question, 0, len(records))
	for _, rec := range records {
		if err := rec.Validate(); err != nil {
			log.WithError(err).WithField("question_id", rec.ID).Warn("Skipping invalid stored question")
			continue
		}
		loc := rec.Localize(lang)
		out = append(out, assessment.Question{
			Text:         loc.Q,
			Options:      loc.Options,
			CorrectIndex: rec.CorrectIndex,
			Explanation:  loc.Expl,
		})
	}
	return out, nil
}

func (s *questionService) CountByCategory(ctx context.Context) (map[string]int64, error) {
	return s.repo.CountByCategory(ctx)
}

// validateAll also numbers the batch so rows inserted together keep their order.
func validateAll(questions []*Question) error {
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("question %d: %w", i, err)
		}
		if q.ID == uuid.Nil {
			q.ID = uuid.New()
		}
		q.OrderIndex = i
	}
	return nil
}

func (s *questionService) AddQuestions(ctx context.Context, questions []*Question) error {
	log := config.WithContext(ctx)

	if err := validateAll(questions); err != nil {
		log.WithError(err).Warn("Rejected questions")
		return err
	}
	if err := s.repo.Create(ctx, questions); err != nil {
		log.WithError(err).Error("Failed to add questions")
		return err
	}

	log.Infof("Added %d questions", len(questions))
	return nil
}

func (s *questionService) ReplaceBank(ctx context.Context, questions []*Question) error {
	log := config.WithContext(ctx)

	if err := validateAll(questions); err != nil {
		return err
	}
	if err := s.repo.ReplaceAll(ctx, questions); err != nil {
		log.WithError(err).Error("Failed to replace question bank")
		return err
	}

	log.Infof("Question bank replaced with %d questions", len(questions))
	return nil
}
