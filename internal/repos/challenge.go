package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/brightsteps/brightsteps-backend/internal/logger"
	"github.com/brightsteps/brightsteps-backend/internal/types"
)

type ChallengeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, challenges []*types.Challenge) ([]*types.Challenge, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Challenge, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Challenge, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type challengeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChallengeRepo(db *gorm.DB, baseLog *logger.Logger) ChallengeRepo {
	repoLog := baseLog.With("repo", "ChallengeRepo")
	return &challengeRepo{db: db, log: repoLog}
}

func (cr *challengeRepo) Create(ctx context.Context, tx *gorm.DB, challenges []*types.Challenge) ([]*types.Challenge, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if len(challenges) == 0 {
		return []*types.Challenge{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&challenges).Error; err != nil {
		return nil, err
	}
	return challenges, nil
}

func (cr *challengeRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Challenge, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var challenge types.Challenge
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&challenge).Error; err != nil {
		return nil, err
	}
	return &challenge, nil
}

func (cr *challengeRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Challenge, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*types.Challenge
	if err := transaction.WithContext(ctx).
		Order("duration_days").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *challengeRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Challenge{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
