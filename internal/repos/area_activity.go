package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/brightsteps/brightsteps-backend/internal/logger"
	"github.com/brightsteps/brightsteps-backend/internal/types"
)

type AreaActivityRepo interface {
	Create(ctx context.Context, tx *gorm.DB, activities []*types.AreaActivity) ([]*types.AreaActivity, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.AreaActivity, error)
	ListByArea(ctx context.Context, tx *gorm.DB, areaID uint) ([]*types.AreaActivity, error)
	CountByArea(ctx context.Context, tx *gorm.DB, areaID uint) (int64, error)
}

type areaActivityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAreaActivityRepo(db *gorm.DB, baseLog *logger.Logger) AreaActivityRepo {
	repoLog := baseLog.With("repo", "AreaActivityRepo")
	return &areaActivityRepo{db: db, log: repoLog}
}

func (aar *areaActivityRepo) Create(ctx context.Context, tx *gorm.DB, activities []*types.AreaActivity) ([]*types.AreaActivity, error) {
	transaction := tx
	if transaction == nil {
		transaction = aar.db
	}
	if len(activities) == 0 {
		return []*types.AreaActivity{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

func (aar *areaActivityRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.AreaActivity, error) {
	transaction := tx
	if transaction == nil {
		transaction = aar.db
	}
	var activity types.AreaActivity
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&activity).Error; err != nil {
		return nil, err
	}
	return &activity, nil
}

func (aar *areaActivityRepo) ListByArea(ctx context.Context, tx *gorm.DB, areaID uint) ([]*types.AreaActivity, error) {
	transaction := tx
	if transaction == nil {
		transaction = aar.db
	}
	var results []*types.AreaActivity
	if err := transaction.WithContext(ctx).
		Where("area_id = ?", areaID).
		Order("id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (aar *areaActivityRepo) CountByArea(ctx context.Context, tx *gorm.DB, areaID uint) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = aar.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.AreaActivity{}).
		Where("area_id = ?", areaID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
