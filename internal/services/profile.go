package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brightsteps/brightsteps-backend/internal/config"
	"github.com/brightsteps/brightsteps-backend/internal/logger"
	"github.com/brightsteps/brightsteps-backend/internal/repos"
	"github.com/brightsteps/brightsteps-backend/internal/types"
)

var (
	ErrBabyNameRequired = errors.New("baby name is required")
	ErrAgeGroupRequired = errors.New("age group is required")
	ErrGoalsRequired    = errors.New("select at least one development goal")
	ErrProfileNotOwned  = errors.New("profile belongs to a different parent")
	ErrProfileNotFound  = errors.New("profile not found")
)

type CreateProfileInput struct {
	ParentID uint
	BabyName string
	AgeGroup string
	Goals    []string
}

type ProfileService interface {
	CreateProfile(ctx context.Context, input CreateProfileInput) (*types.Baby, error)
	GetByUUID(ctx context.Context, token uuid.UUID) (*types.Baby, error)
	GetOwnedByUUID(ctx context.Context, token uuid.UUID, parentID uint) (*types.Baby, error)
	ListByParent(ctx context.Context, parentID uint) ([]*types.Baby, error)
	UpdateGoals(ctx context.Context, token uuid.UUID, goals []string) error
}

type profileService struct {
	db       *gorm.DB
	log      *logger.Logger
	babyRepo repos.BabyRepo
	goals    *config.GoalTable
}

func NewProfileService(db *gorm.DB, log *logger.Logger, babyRepo repos.BabyRepo, goals *config.GoalTable) ProfileService {
	serviceLog := log.With("service", "ProfileService")
	return &profileService{db: db, log: serviceLog, babyRepo: babyRepo, goals: goals}
}

// dedupeGoals preserves the first occurrence order while dropping repeats
// and blanks.
func dedupeGoals(goals []string) []string {
	seen := make(map[string]bool, len(goals))
	out := make([]string, 0, len(goals))
	for _, g := range goals {
		g = strings.TrimSpace(g)
		if g == "" || seen[g] {
			continue
		}
		seen[g] = true
		out = append(out, g)
	}
	return out
}

func (ps *profileService) CreateProfile(ctx context.Context, input CreateProfileInput) (*types.Baby, error) {
	name := strings.TrimSpace(input.BabyName)
	if name == "" {
		return nil, ErrBabyNameRequired
	}
	if strings.TrimSpace(input.AgeGroup) == "" {
		return nil, ErrAgeGroupRequired
	}
	goals := dedupeGoals(input.Goals)
	if len(goals) == 0 {
		return nil, ErrGoalsRequired
	}

	baby := &types.Baby{
		UUID:             uuid.New(),
		ParentID:         input.ParentID,
		BabyName:         name,
		AgeGroup:         input.AgeGroup,
		AgeMonths:        ps.goals.MonthsForAgeGroup(input.AgeGroup),
		AvatarEmoji:      "👶",
		DevelopmentGoals: toJSONList(goals),
	}
	created, err := ps.babyRepo.Create(ctx, nil, baby)
	if err != nil {
		return nil, fmt.Errorf("failed to create baby profile: %w", err)
	}
	ps.log.Info("Created baby profile", "baby_id", created.ID, "age_months", created.AgeMonths)
	return created, nil
}

func (ps *profileService) GetByUUID(ctx context.Context, token uuid.UUID) (*types.Baby, error) {
	baby, err := ps.babyRepo.GetByUUID(ctx, nil, token)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	return baby, err
}

// GetOwnedByUUID resolves a profile and verifies it belongs to the
// session's parent; a mismatch is a session error, not a 404.
func (ps *profileService) GetOwnedByUUID(ctx context.Context, token uuid.UUID, parentID uint) (*types.Baby, error) {
	baby, err := ps.GetByUUID(ctx, token)
	if err != nil {
		return nil, err
	}
	if baby.ParentID != 0 && baby.ParentID != parentID {
		return nil, ErrProfileNotOwned
	}
	return baby, nil
}

func (ps *profileService) ListByParent(ctx context.Context, parentID uint) ([]*types.Baby, error) {
	return ps.babyRepo.ListByParent(ctx, nil, parentID)
}

func (ps *profileService) UpdateGoals(ctx context.Context, token uuid.UUID, goals []string) error {
	deduped := dedupeGoals(goals)
	if len(deduped) == 0 {
		return ErrGoalsRequired
	}
	return ps.babyRepo.UpdateGoals(ctx, nil, token, toJSONList(deduped))
}
