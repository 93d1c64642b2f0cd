package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/brightsteps/brightsteps-backend/internal/logger"
	"github.com/brightsteps/brightsteps-backend/internal/types"
)

type PersonalizedActivityRepo interface {
	Create(ctx context.Context, tx *gorm.DB, activities []*types.PersonalizedActivity) ([]*types.PersonalizedActivity, error)
	ListByBaby(ctx context.Context, tx *gorm.DB, babyID uint, limit int) ([]*types.PersonalizedActivity, error)
}

type personalizedActivityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPersonalizedActivityRepo(db *gorm.DB, baseLog *logger.Logger) PersonalizedActivityRepo {
	repoLog := baseLog.With("repo", "PersonalizedActivityRepo")
	return &personalizedActivityRepo{db: db, log: repoLog}
}

func (par *personalizedActivityRepo) Create(ctx context.Context, tx *gorm.DB, activities []*types.PersonalizedActivity) ([]*types.PersonalizedActivity, error) {
	transaction := tx
	if transaction == nil {
		transaction = par.db
	}
	if len(activities) == 0 {
		return []*types.PersonalizedActivity{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

func (par *personalizedActivityRepo) ListByBaby(ctx context.Context, tx *gorm.DB, babyID uint, limit int) ([]*types.PersonalizedActivity, error) {
	transaction := tx
	if transaction == nil {
		transaction = par.db
	}
	q := transaction.WithContext(ctx).
		Where("baby_id = ?", babyID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var results []*types.PersonalizedActivity
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
