package services

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/brightsteps/brightsteps-backend/internal/logger"
	"github.com/brightsteps/brightsteps-backend/internal/repos"
	"github.com/brightsteps/brightsteps-backend/internal/types"
)

// DefaultChallengePreviewDays bounds how much of a challenge schedule is
// ever materialized. Templates describe up to 365 days but only this
// preview window is generated; the rest stays virtual.
const DefaultChallengePreviewDays = 10

// ContentService is the generate-and-memoize orchestrator. Each Ensure
// operation runs its check-generate-insert sequence inside one transaction
// keyed by the owner (baby, area, or global), so two racing first visits
// cannot both observe "absent" and double-generate. After inserting, the
// store is re-read so callers see storage-assigned ids and defaults.
type ContentService interface {
	EnsureDevelopmentAreas(ctx context.Context, baby *types.Baby) ([]*types.DevelopmentArea, error)
	EnsureAreaActivities(ctx context.Context, area *types.DevelopmentArea) ([]*types.AreaActivity, error)
	EnsureChallengeTemplates(ctx context.Context) ([]*types.Challenge, error)
	EnsureChallengePreview(ctx context.Context, challenge *types.Challenge, ageMonths int, numDays int) ([]*types.ChallengeActivity, error)
}

type contentService struct {
	db                *gorm.DB
	log               *logger.Logger
	generator         GenerationService
	areaRepo          repos.AreaRepo
	areaActivityRepo  repos.AreaActivityRepo
	challengeRepo     repos.ChallengeRepo
	challengeActsRepo repos.ChallengeActivityRepo
}

func NewContentService(
	db *gorm.DB,
	log *logger.Logger,
	generator GenerationService,
	areaRepo repos.AreaRepo,
	areaActivityRepo repos.AreaActivityRepo,
	challengeRepo repos.ChallengeRepo,
	challengeActsRepo repos.ChallengeActivityRepo,
) ContentService {
	serviceLog := log.With("service", "ContentService")
	return &contentService{
		db:                db,
		log:               serviceLog,
		generator:         generator,
		areaRepo:          areaRepo,
		areaActivityRepo:  areaActivityRepo,
		challengeRepo:     challengeRepo,
		challengeActsRepo: challengeActsRepo,
	}
}

func goalsFromJSON(raw datatypes.JSON) []string {
	var goals []string
	if len(raw) == 0 {
		return goals
	}
	_ = json.Unmarshal(raw, &goals)
	return goals
}

func toJSONList(items []string) datatypes.JSON {
	if items == nil {
		items = []string{}
	}
	raw, _ := json.Marshal(items)
	return datatypes.JSON(raw)
}

func (cs *contentService) EnsureDevelopmentAreas(ctx context.Context, baby *types.Baby) ([]*types.DevelopmentArea, error) {
	var result []*types.DevelopmentArea
	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := cs.areaRepo.ListByBaby(ctx, tx, baby.ID)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			result = existing
			return nil
		}

		generated := cs.generator.GenerateDevelopmentAreas(ctx, baby.BabyName, baby.AgeMonths, goalsFromJSON(baby.DevelopmentGoals))
		if len(generated) == 0 {
			cs.log.Warn("No development areas generated, leaving profile empty", "baby_id", baby.ID)
			result = []*types.DevelopmentArea{}
			return nil
		}

		rows := make([]*types.DevelopmentArea, 0, len(generated))
		for _, g := range generated {
			rows = append(rows, &types.DevelopmentArea{
				BabyID:          baby.ID,
				AreaName:        g.Name,
				DevelopmentType: g.Type,
				AgeRangeMin:     g.AgeMin,
				AgeRangeMax:     g.AgeMax,
				Emoji:           g.Emoji,
				Color:           g.Color,
				Description:     g.Description,
				ActivityCount:   g.ActivityCount,
			})
		}
		if _, err := cs.areaRepo.Create(ctx, tx, rows); err != nil {
			return err
		}

		result, err = cs.areaRepo.ListByBaby(ctx, tx, baby.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (cs *contentService) EnsureAreaActivities(ctx context.Context, area *types.DevelopmentArea) ([]*types.AreaActivity, error) {
	var result []*types.AreaActivity
	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := cs.areaActivityRepo.ListByArea(ctx, tx, area.ID)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			result = existing
			return nil
		}

		generated := cs.generator.GenerateAreaActivities(ctx, area.AreaName, area.Description, area.DevelopmentType, area.AgeRangeMin, area.AgeRangeMax)
		if len(generated) == 0 {
			cs.log.Warn("No activities generated for area", "area_id", area.ID)
			result = []*types.AreaActivity{}
			return nil
		}

		rows := make([]*types.AreaActivity, 0, len(generated))
		for _, g := range generated {
			duration := g.DurationMin
			if duration <= 0 {
				duration = 10
			}
			icon := g.Icon
			if icon == "" {
				icon = "🎯"
			}
			rows = append(rows, &types.AreaActivity{
				AreaID:           area.ID,
				Title:            g.Title,
				ShortDescription: g.ShortDescription,
				Icon:             icon,
				Materials:        toJSONList(g.Materials),
				HowTo:            toJSONList(g.HowTo),
				DurationMin:      duration,
				WhyItHelps:       g.WhyItHelps,
				SafetyNotes:      g.SafetyNotes,
				ReflectionPrompt: g.ReflectionPrompt,
			})
		}
		if _, err := cs.areaActivityRepo.Create(ctx, tx, rows); err != nil {
			return err
		}

		result, err = cs.areaActivityRepo.ListByArea(ctx, tx, area.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (cs *contentService) EnsureChallengeTemplates(ctx context.Context) ([]*types.Challenge, error) {
	var result []*types.Challenge
	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := cs.challengeRepo.List(ctx, tx)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			result = existing
			return nil
		}

		generated := cs.generator.GenerateChallengeTemplates(ctx)
		if len(generated) == 0 {
			cs.log.Warn("No challenge templates generated")
			result = []*types.Challenge{}
			return nil
		}

		rows := make([]*types.Challenge, 0, len(generated))
		for _, g := range generated {
			rows = append(rows, &types.Challenge{
				DurationDays:     g.Duration,
				Title:            g.Title,
				Tagline:          g.Tagline,
				Description:      g.Description,
				Emoji:            g.Emoji,
				DevelopmentTypes: toJSONList(g.DevelopmentTypes),
			})
		}
		if _, err := cs.challengeRepo.Create(ctx, tx, rows); err != nil {
			return err
		}

		result, err = cs.challengeRepo.List(ctx, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (cs *contentService) EnsureChallengePreview(ctx context.Context, challenge *types.Challenge, ageMonths int, numDays int) ([]*types.ChallengeActivity, error) {
	if numDays <= 0 {
		numDays = DefaultChallengePreviewDays
	}
	var result []*types.ChallengeActivity
	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := cs.challengeActsRepo.ListByChallenge(ctx, tx, challenge.ID, numDays)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			result = existing
			return nil
		}

		generated := cs.generator.GenerateChallengeDailyActivities(ctx, challenge.DurationDays, challenge.Title, ageMonths, numDays)
		if len(generated) == 0 {
			cs.log.Warn("No daily activities generated for challenge", "challenge_id", challenge.ID)
			result = []*types.ChallengeActivity{}
			return nil
		}

		rows := make([]*types.ChallengeActivity, 0, len(generated))
		for _, g := range generated {
			duration := g.DurationMin
			if duration <= 0 {
				duration = 15
			}
			rows = append(rows, &types.ChallengeActivity{
				ChallengeID: challenge.ID,
				DayNumber:   g.DayNumber,
				Title:       g.Title,
				Description: g.Description,
				Materials:   toJSONList(g.Materials),
				HowTo:       toJSONList(g.HowTo),
				WhyItHelps:  g.WhyItHelps,
				DurationMin: duration,
				CreatedAt:   time.Now().UTC(),
			})
		}
		if _, err := cs.challengeActsRepo.Create(ctx, tx, rows); err != nil {
			return err
		}

		result, err = cs.challengeActsRepo.ListByChallenge(ctx, tx, challenge.ID, numDays)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
