package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/brightsteps/brightsteps-backend/internal/logger"
	"github.com/brightsteps/brightsteps-backend/internal/repos"
	"github.com/brightsteps/brightsteps-backend/internal/types"
)

// CompletionService records task completions and answers same-day queries.
// Completions are append-only events; duplicate completions within a day
// are allowed at the row level and deduplicated only when listing ids.
type CompletionService interface {
	MarkTaskComplete(ctx context.Context, babyID, activityID, areaID uint) (int64, error)
	CompletedTodayCount(ctx context.Context, babyID uint) (int64, error)
	CompletedTodayIDs(ctx context.Context, babyID uint) ([]uint, error)
	IsCompletedToday(ctx context.Context, babyID, activityID uint) (bool, error)
}

type completionService struct {
	db             *gorm.DB
	log            *logger.Logger
	completionRepo repos.CompletionRepo
	now            func() time.Time
}

func NewCompletionService(db *gorm.DB, log *logger.Logger, completionRepo repos.CompletionRepo) CompletionService {
	serviceLog := log.With("service", "CompletionService")
	return &completionService{db: db, log: serviceLog, completionRepo: completionRepo, now: time.Now}
}

func (cs *completionService) MarkTaskComplete(ctx context.Context, babyID, activityID, areaID uint) (int64, error) {
	now := cs.now().UTC()
	_, err := cs.completionRepo.Create(ctx, nil, &types.TaskCompletion{
		BabyID:      babyID,
		ActivityID:  activityID,
		AreaID:      areaID,
		CompletedAt: now,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to record completion: %w", err)
	}
	cs.log.Debug("Task completed", "baby_id", babyID, "activity_id", activityID)
	return cs.completionRepo.CountForDay(ctx, nil, babyID, now)
}

func (cs *completionService) CompletedTodayCount(ctx context.Context, babyID uint) (int64, error) {
	return cs.completionRepo.CountForDay(ctx, nil, babyID, cs.now().UTC())
}

func (cs *completionService) CompletedTodayIDs(ctx context.Context, babyID uint) ([]uint, error) {
	return cs.completionRepo.ActivityIDsForDay(ctx, nil, babyID, cs.now().UTC())
}

func (cs *completionService) IsCompletedToday(ctx context.Context, babyID, activityID uint) (bool, error) {
	return cs.completionRepo.CompletedOnDay(ctx, nil, babyID, activityID, cs.now().UTC())
}
