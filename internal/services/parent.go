package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"gorm.io/gorm"

	"github.com/brightsteps/brightsteps-backend/internal/logger"
	"github.com/brightsteps/brightsteps-backend/internal/repos"
	"github.com/brightsteps/brightsteps-backend/internal/types"
)

var (
	ErrEmptyContact   = errors.New("contact info is required")
	ErrInvalidContact = errors.New("contact info is not a valid email or mobile number")
)

type ParentService interface {
	GetOrCreateParent(ctx context.Context, contactInfo string) (*types.Parent, error)
	GetParent(ctx context.Context, id uint) (*types.Parent, error)
}

type parentService struct {
	db         *gorm.DB
	log        *logger.Logger
	parentRepo repos.ParentRepo
}

func NewParentService(db *gorm.DB, log *logger.Logger, parentRepo repos.ParentRepo) ParentService {
	serviceLog := log.With("service", "ParentService")
	return &parentService{db: db, log: serviceLog, parentRepo: parentRepo}
}

// ClassifyContact types a raw contact string as email or mobile. The check
// is deliberately shallow: this identity is a soft key, not a verified
// channel.
func ClassifyContact(contactInfo string) (string, error) {
	contactInfo = strings.TrimSpace(contactInfo)
	if contactInfo == "" {
		return "", ErrEmptyContact
	}
	if strings.Contains(contactInfo, "@") {
		if !strings.Contains(contactInfo, ".") || len(contactInfo) < 5 {
			return "", ErrInvalidContact
		}
		return types.ContactTypeEmail, nil
	}
	for _, r := range contactInfo {
		if unicode.IsDigit(r) {
			return types.ContactTypeMobile, nil
		}
	}
	return "", ErrInvalidContact
}

func (ps *parentService) GetOrCreateParent(ctx context.Context, contactInfo string) (*types.Parent, error) {
	contactInfo = strings.TrimSpace(contactInfo)
	contactType, err := ClassifyContact(contactInfo)
	if err != nil {
		return nil, err
	}

	parent, err := ps.parentRepo.GetByContact(ctx, nil, contactType, contactInfo)
	if err == nil {
		return parent, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up parent: %w", err)
	}

	created, createErr := ps.parentRepo.Create(ctx, nil, &types.Parent{
		ContactType:  contactType,
		ContactValue: contactInfo,
		AvatarEmoji:  "👤",
	})
	if createErr == nil {
		return created, nil
	}

	// A concurrent request may have inserted the same contact between our
	// check and insert; the unique index turns that into an error we
	// recover from by re-querying.
	parent, err = ps.parentRepo.GetByContact(ctx, nil, contactType, contactInfo)
	if err != nil {
		return nil, fmt.Errorf("failed to create parent: %w", createErr)
	}
	return parent, nil
}

func (ps *parentService) GetParent(ctx context.Context, id uint) (*types.Parent, error) {
	return ps.parentRepo.GetByID(ctx, nil, id)
}
