package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/brightsteps/brightsteps-backend/internal/logger"
	"github.com/brightsteps/brightsteps-backend/internal/repos"
	"github.com/brightsteps/brightsteps-backend/internal/types"
)

var ErrInvalidResponse = errors.New("response must be Mastered, On-Track or Not Sure")

type AssessmentAnswer struct {
	QuestionID uint   `json:"question_id"`
	Response   string `json:"response"`
}

// AssessmentService drives the ability-assessment loop: generate questions
// for a profile, record the parent's answers, then generate personalized
// activities from the recorded state.
type AssessmentService interface {
	GenerateQuestions(ctx context.Context, baby *types.Baby) ([]*types.AbilityQuestion, error)
	SaveAnswers(ctx context.Context, baby *types.Baby, answers []AssessmentAnswer) error
	AssessedToday(ctx context.Context, babyID uint) (bool, error)
	GeneratePersonalized(ctx context.Context, baby *types.Baby) ([]*types.PersonalizedActivity, error)
	ListPersonalized(ctx context.Context, babyID uint, limit int) ([]*types.PersonalizedActivity, error)
}

type assessmentService struct {
	db               *gorm.DB
	log              *logger.Logger
	generator        GenerationService
	assessmentRepo   repos.AssessmentRepo
	personalizedRepo repos.PersonalizedActivityRepo
}

func NewAssessmentService(
	db *gorm.DB,
	log *logger.Logger,
	generator GenerationService,
	assessmentRepo repos.AssessmentRepo,
	personalizedRepo repos.PersonalizedActivityRepo,
) AssessmentService {
	serviceLog := log.With("service", "AssessmentService")
	return &assessmentService{
		db:               db,
		log:              serviceLog,
		generator:        generator,
		assessmentRepo:   assessmentRepo,
		personalizedRepo: personalizedRepo,
	}
}

func validResponse(r string) bool {
	switch r {
	case types.AssessmentResponseMastered, types.AssessmentResponseOnTrack, types.AssessmentResponseNotSure:
		return true
	}
	return false
}

func (as *assessmentService) GenerateQuestions(ctx context.Context, baby *types.Baby) ([]*types.AbilityQuestion, error) {
	generated := as.generator.GenerateAbilityQuestions(ctx, baby.BabyName, baby.AgeMonths, goalsFromJSON(baby.DevelopmentGoals))
	if len(generated) == 0 {
		return []*types.AbilityQuestion{}, nil
	}
	rows := make([]*types.AbilityQuestion, 0, len(generated))
	for _, g := range generated {
		rows = append(rows, &types.AbilityQuestion{
			Domain:       g.Domain,
			QuestionText: g.Text,
			AgeRangeMin:  baby.AgeMonths,
			AgeRangeMax:  baby.AgeMonths,
			HelpfulHint:  g.HelpfulHint,
		})
	}
	if _, err := as.assessmentRepo.CreateQuestions(ctx, nil, rows); err != nil {
		return nil, fmt.Errorf("failed to save generated questions: %w", err)
	}
	return rows, nil
}

func (as *assessmentService) SaveAnswers(ctx context.Context, baby *types.Baby, answers []AssessmentAnswer) error {
	for _, a := range answers {
		if !validResponse(a.Response) {
			return ErrInvalidResponse
		}
	}
	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, a := range answers {
			_, err := as.assessmentRepo.CreateAssessment(ctx, tx, &types.AbilityAssessment{
				BabyID:     baby.ID,
				QuestionID: a.QuestionID,
				Response:   a.Response,
			})
			if err != nil {
				return fmt.Errorf("failed to save assessment answer: %w", err)
			}
		}
		return nil
	})
}

func (as *assessmentService) AssessedToday(ctx context.Context, babyID uint) (bool, error) {
	return as.assessmentRepo.AssessedOnDay(ctx, nil, babyID, time.Now().UTC())
}

func (as *assessmentService) GeneratePersonalized(ctx context.Context, baby *types.Baby) ([]*types.PersonalizedActivity, error) {
	assessments, err := as.assessmentRepo.ListByBaby(ctx, nil, baby.ID)
	if err != nil {
		return nil, err
	}
	summary := make([]AssessmentSummary, 0, len(assessments))
	for _, a := range assessments {
		s := AssessmentSummary{State: a.Response}
		if a.Question != nil {
			s.Domain = a.Question.Domain
			s.Ability = a.Question.QuestionText
		}
		summary = append(summary, s)
	}

	generated := as.generator.GeneratePersonalizedActivities(ctx, baby.BabyName, baby.AgeMonths, goalsFromJSON(baby.DevelopmentGoals), summary)
	if len(generated) == 0 {
		return []*types.PersonalizedActivity{}, nil
	}

	rows := make([]*types.PersonalizedActivity, 0, len(generated))
	for _, g := range generated {
		duration := g.DurationMin
		if duration <= 0 {
			duration = 10
		}
		rows = append(rows, &types.PersonalizedActivity{
			BabyID:           baby.ID,
			Title:            g.Title,
			Description:      g.Description,
			Materials:        toJSONList(g.Materials),
			HowTo:            toJSONList(g.HowTo),
			WhyItHelps:       g.WhyItHelps,
			TargetDomain:     g.TargetDomain,
			TargetAbility:    g.TargetAbility,
			AbilityState:     g.AbilityState,
			DurationMin:      duration,
			SafetyNotes:      g.SafetyNotes,
			ReflectionPrompt: g.ReflectionPrompt,
		})
	}
	if _, err := as.personalizedRepo.Create(ctx, nil, rows); err != nil {
		return nil, fmt.Errorf("failed to save personalized activities: %w", err)
	}
	return rows, nil
}

func (as *assessmentService) ListPersonalized(ctx context.Context, babyID uint, limit int) ([]*types.PersonalizedActivity, error) {
	return as.personalizedRepo.ListByBaby(ctx, nil, babyID, limit)
}
