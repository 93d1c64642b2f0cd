package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/brightsteps/brightsteps-backend/internal/logger"
	"github.com/brightsteps/brightsteps-backend/internal/types"
)

type ChallengeActivityRepo interface {
	Create(ctx context.Context, tx *gorm.DB, activities []*types.ChallengeActivity) ([]*types.ChallengeActivity, error)
	ListByChallenge(ctx context.Context, tx *gorm.DB, challengeID uint, limit int) ([]*types.ChallengeActivity, error)
}

type challengeActivityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChallengeActivityRepo(db *gorm.DB, baseLog *logger.Logger) ChallengeActivityRepo {
	repoLog := baseLog.With("repo", "ChallengeActivityRepo")
	return &challengeActivityRepo{db: db, log: repoLog}
}

func (car *challengeActivityRepo) Create(ctx context.Context, tx *gorm.DB, activities []*types.ChallengeActivity) ([]*types.ChallengeActivity, error) {
	transaction := tx
	if transaction == nil {
		transaction = car.db
	}
	if len(activities) == 0 {
		return []*types.ChallengeActivity{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

func (car *challengeActivityRepo) ListByChallenge(ctx context.Context, tx *gorm.DB, challengeID uint, limit int) ([]*types.ChallengeActivity, error) {
	transaction := tx
	if transaction == nil {
		transaction = car.db
	}
	q := transaction.WithContext(ctx).
		Where("challenge_id = ?", challengeID).
		Order("day_number")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var results []*types.ChallengeActivity
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
