package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/brightsteps/brightsteps-backend/internal/logger"
	"github.com/brightsteps/brightsteps-backend/internal/types"
)

type ParentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, parent *types.Parent) (*types.Parent, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Parent, error)
	GetByContact(ctx context.Context, tx *gorm.DB, contactType, contactValue string) (*types.Parent, error)
	Update(ctx context.Context, tx *gorm.DB, parent *types.Parent) error
}

type parentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewParentRepo(db *gorm.DB, baseLog *logger.Logger) ParentRepo {
	repoLog := baseLog.With("repo", "ParentRepo")
	return &parentRepo{db: db, log: repoLog}
}

func (pr *parentRepo) Create(ctx context.Context, tx *gorm.DB, parent *types.Parent) (*types.Parent, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if err := transaction.WithContext(ctx).Create(parent).Error; err != nil {
		return nil, err
	}
	return parent, nil
}

func (pr *parentRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.Parent, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var parent types.Parent
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&parent).Error; err != nil {
		return nil, err
	}
	return &parent, nil
}

func (pr *parentRepo) GetByContact(ctx context.Context, tx *gorm.DB, contactType, contactValue string) (*types.Parent, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var parent types.Parent
	if err := transaction.WithContext(ctx).
		Where("contact_type = ? AND contact_value = ?", contactType, contactValue).
		First(&parent).Error; err != nil {
		return nil, err
	}
	return &parent, nil
}

func (pr *parentRepo) Update(ctx context.Context, tx *gorm.DB, parent *types.Parent) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).Save(parent).Error
}
