package repos

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/brightsteps/brightsteps-backend/internal/logger"
	"github.com/brightsteps/brightsteps-backend/internal/types"
)

type CompletionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, completion *types.TaskCompletion) (*types.TaskCompletion, error)
	CountForDay(ctx context.Context, tx *gorm.DB, babyID uint, day time.Time) (int64, error)
	ActivityIDsForDay(ctx context.Context, tx *gorm.DB, babyID uint, day time.Time) ([]uint, error)
	CompletedOnDay(ctx context.Context, tx *gorm.DB, babyID, activityID uint, day time.Time) (bool, error)
}

type completionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCompletionRepo(db *gorm.DB, baseLog *logger.Logger) CompletionRepo {
	repoLog := baseLog.With("repo", "CompletionRepo")
	return &completionRepo{db: db, log: repoLog}
}

// dayBounds returns the half-open UTC range covering the calendar day of t.
func dayBounds(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24 * time.Hour)
}

func (cr *completionRepo) Create(ctx context.Context, tx *gorm.DB, completion *types.TaskCompletion) (*types.TaskCompletion, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if err := transaction.WithContext(ctx).Create(completion).Error; err != nil {
		return nil, err
	}
	return completion, nil
}

func (cr *completionRepo) CountForDay(ctx context.Context, tx *gorm.DB, babyID uint, day time.Time) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	start, end := dayBounds(day)
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.TaskCompletion{}).
		Distinct("activity_id").
		Where("baby_id = ? AND completed_at >= ? AND completed_at < ?", babyID, start, end).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (cr *completionRepo) ActivityIDsForDay(ctx context.Context, tx *gorm.DB, babyID uint, day time.Time) ([]uint, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	start, end := dayBounds(day)
	var ids []uint
	if err := transaction.WithContext(ctx).
		Model(&types.TaskCompletion{}).
		Distinct("activity_id").
		Where("baby_id = ? AND completed_at >= ? AND completed_at < ?", babyID, start, end).
		Pluck("activity_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (cr *completionRepo) CompletedOnDay(ctx context.Context, tx *gorm.DB, babyID, activityID uint, day time.Time) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	start, end := dayBounds(day)
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.TaskCompletion{}).
		Where("baby_id = ? AND activity_id = ? AND completed_at >= ? AND completed_at < ?", babyID, activityID, start, end).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
