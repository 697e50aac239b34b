package question

import (
	"context"

	"gorm.io/gorm"
)

type QuestionRepository interface {
	ListByCategory(ctx context.Context, categoryID string) ([]*Question, error)
	CountByCategory(ctx context.Context) (map[string]int64, error)
	Create(ctx context.Context, questions []*Question) error
	ReplaceAll(ctx context.Context, questions []*Question) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) ListByCategory(ctx context.Context, categoryID string) ([]*Question, error) {
	var questions []*Question
	if err := r.db.WithContext(ctx).
		Where("category = ?", categoryID).
		Order("created_at ASC, order_index ASC, id ASC").
		Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) CountByCategory(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Category string
		Total    int64
	}
	if err := r.db.WithContext(ctx).
		Model(&Question{}).
		Select("category, COUNT(*) AS total").
		Group("category").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Category] = row.Total
	}
	return counts, nil
}

func (r *questionRepository) Create(ctx context.Context, questions []*Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&questions).Error
}

func (r *questionRepository) ReplaceAll(ctx context.Context, questions []*Question) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Question{}).Error; err != nil {
			return err
		}
		if len(questions) == 0 {
			return nil
		}
		return tx.Create(&questions).Error
	})
}
