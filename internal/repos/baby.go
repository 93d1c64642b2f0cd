package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/brightsteps/brightsteps-backend/internal/logger"
	"github.com/brightsteps/brightsteps-backend/internal/types"
)

type BabyRepo interface {
	Create(ctx context.Context, tx *gorm.DB, baby *types.Baby) (*types.Baby, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Baby, error)
	GetByUUID(ctx context.Context, tx *gorm.DB, token uuid.UUID) (*types.Baby, error)
	ListByParent(ctx context.Context, tx *gorm.DB, parentID uint) ([]*types.Baby, error)
	UpdateGoals(ctx context.Context, tx *gorm.DB, token uuid.UUID, goals datatypes.JSON) error
	UpdateAvatarPath(ctx context.Context, tx *gorm.DB, id uint, path string) error
}

type babyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBabyRepo(db *gorm.DB, baseLog *logger.Logger) BabyRepo {
	repoLog := baseLog.With("repo", "BabyRepo")
	return &babyRepo{db: db, log: repoLog}
}

func (br *babyRepo) Create(ctx context.Context, tx *gorm.DB, baby *types.Baby) (*types.Baby, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	if err := transaction.WithContext(ctx).Create(baby).Error; err != nil {
		return nil, err
	}
	return baby, nil
}

func (br *babyRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Baby, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	var baby types.Baby
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&baby).Error; err != nil {
		return nil, err
	}
	return &baby, nil
}

func (br *babyRepo) GetByUUID(ctx context.Context, tx *gorm.DB, token uuid.UUID) (*types.Baby, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	var baby types.Baby
	if err := transaction.WithContext(ctx).
		Where("baby_uuid = ?", token).
		First(&baby).Error; err != nil {
		return nil, err
	}
	return &baby, nil
}

func (br *babyRepo) ListByParent(ctx context.Context, tx *gorm.DB, parentID uint) ([]*types.Baby, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	var results []*types.Baby
	if err := transaction.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (br *babyRepo) UpdateGoals(ctx context.Context, tx *gorm.DB, token uuid.UUID, goals datatypes.JSON) error {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Baby{}).
		Where("baby_uuid = ?", token).
		Update("development_goals", goals).Error
}

func (br *babyRepo) UpdateAvatarPath(ctx context.Context, tx *gorm.DB, id uint, path string) error {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Baby{}).
		Where("id = ?", id).
		Update("avatar_path", path).Error
}
