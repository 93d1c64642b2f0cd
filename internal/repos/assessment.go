package repos

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/brightsteps/brightsteps-backend/internal/logger"
	"github.com/brightsteps/brightsteps-backend/internal/types"
)

type AssessmentRepo interface {
	CreateQuestions(ctx context.Context, tx *gorm.DB, questions []*types.AbilityQuestion) ([]*types.AbilityQuestion, error)
	CreateAssessment(ctx context.Context, tx *gorm.DB, assessment *types.AbilityAssessment) (*types.AbilityAssessment, error)
	ListByBaby(ctx context.Context, tx *gorm.DB, babyID uint) ([]*types.AbilityAssessment, error)
	AssessedOnDay(ctx context.Context, tx *gorm.DB, babyID uint, day time.Time) (bool, error)
}

type assessmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssessmentRepo(db *gorm.DB, baseLog *logger.Logger) AssessmentRepo {
	repoLog := baseLog.With("repo", "AssessmentRepo")
	return &assessmentRepo{db: db, log: repoLog}
}

func (ar *assessmentRepo) CreateQuestions(ctx context.Context, tx *gorm.DB, questions []*types.AbilityQuestion) ([]*types.AbilityQuestion, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	if len(questions) == 0 {
		return []*types.AbilityQuestion{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (ar *assessmentRepo) CreateAssessment(ctx context.Context, tx *gorm.DB, assessment *types.AbilityAssessment) (*types.AbilityAssessment, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	if err := transaction.WithContext(ctx).Create(assessment).Error; err != nil {
		return nil, err
	}
	return assessment, nil
}

func (ar *assessmentRepo) ListByBaby(ctx context.Context, tx *gorm.DB, babyID uint) ([]*types.AbilityAssessment, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var results []*types.AbilityAssessment
	if err := transaction.WithContext(ctx).
		Preload("Question").
		Where("baby_id = ?", babyID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *assessmentRepo) AssessedOnDay(ctx context.Context, tx *gorm.DB, babyID uint, day time.Time) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	start, end := dayBounds(day)
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.AbilityAssessment{}).
		Where("baby_id = ? AND created_at >= ? AND created_at < ?", babyID, start, end).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
