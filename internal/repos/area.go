package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/brightsteps/brightsteps-backend/internal/logger"
	"github.com/brightsteps/brightsteps-backend/internal/types"
)

type AreaRepo interface {
	Create(ctx context.Context, tx *gorm.DB, areas []*types.DevelopmentArea) ([]*types.DevelopmentArea, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.DevelopmentArea, error)
	ListByBaby(ctx context.Context, tx *gorm.DB, babyID uint) ([]*types.DevelopmentArea, error)
}

type areaRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAreaRepo(db *gorm.DB, baseLog *logger.Logger) AreaRepo {
	repoLog := baseLog.With("repo", "AreaRepo")
	return &areaRepo{db: db, log: repoLog}
}

func (ar *areaRepo) Create(ctx context.Context, tx *gorm.DB, areas []*types.DevelopmentArea) ([]*types.DevelopmentArea, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	if len(areas) == 0 {
		return []*types.DevelopmentArea{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&areas).Error; err != nil {
		return nil, err
	}
	return areas, nil
}

func (ar *areaRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.DevelopmentArea, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var area types.DevelopmentArea
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&area).Error; err != nil {
		return nil, err
	}
	return &area, nil
}

func (ar *areaRepo) ListByBaby(ctx context.Context, tx *gorm.DB, babyID uint) ([]*types.DevelopmentArea, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var results []*types.DevelopmentArea
	if err := transaction.WithContext(ctx).
		Where("baby_id = ?", babyID).
		Order("id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
