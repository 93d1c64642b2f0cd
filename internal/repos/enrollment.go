package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/brightsteps/brightsteps-backend/internal/logger"
	"github.com/brightsteps/brightsteps-backend/internal/types"
)

type EnrollmentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, enrollment *types.ChallengeEnrollment) (*types.ChallengeEnrollment, error)
	GetActive(ctx context.Context, tx *gorm.DB, babyID, challengeID uint) (*types.ChallengeEnrollment, error)
	ListActiveByBaby(ctx context.Context, tx *gorm.DB, babyID uint) ([]*types.ChallengeEnrollment, error)
}

type enrollmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEnrollmentRepo(db *gorm.DB, baseLog *logger.Logger) EnrollmentRepo {
	repoLog := baseLog.With("repo", "EnrollmentRepo")
	return &enrollmentRepo{db: db, log: repoLog}
}

func (er *enrollmentRepo) Create(ctx context.Context, tx *gorm.DB, enrollment *types.ChallengeEnrollment) (*types.ChallengeEnrollment, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	if err := transaction.WithContext(ctx).Create(enrollment).Error; err != nil {
		return nil, err
	}
	return enrollment, nil
}

func (er *enrollmentRepo) GetActive(ctx context.Context, tx *gorm.DB, babyID, challengeID uint) (*types.ChallengeEnrollment, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	var enrollment types.ChallengeEnrollment
	err := transaction.WithContext(ctx).
		Where("baby_id = ? AND challenge_id = ? AND status = ?", babyID, challengeID, types.EnrollmentStatusActive).
		First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (er *enrollmentRepo) ListActiveByBaby(ctx context.Context, tx *gorm.DB, babyID uint) ([]*types.ChallengeEnrollment, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	var results []*types.ChallengeEnrollment
	if err := transaction.WithContext(ctx).
		Preload("Challenge").
		Where("baby_id = ? AND status = ?", babyID, types.EnrollmentStatusActive).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
