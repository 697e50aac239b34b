package result

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ResultRepository interface {
	Create(ctx context.Context, r *TestResult) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*TestResult, error)
}

type resultRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

func (r *resultRepository) Create(ctx context.Context, res *TestResult) error {
	return r.db.WithContext(ctx).Create(res).Error
}

// ListByUser returns the user's results, most recent first.
func (r *resultRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*TestResult, error) {
	var results []*TestResult
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("taken_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
