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

var ErrChallengeNotFound = errors.New("challenge not found")

type ChallengeService interface {
	ListChallenges(ctx context.Context) ([]*types.Challenge, error)
	GetChallenge(ctx context.Context, id uint) (*types.Challenge, error)
	Enroll(ctx context.Context, babyID, challengeID uint) (uint, error)
	ActiveEnrollments(ctx context.Context, babyID uint) ([]*types.ChallengeEnrollment, error)
}

type challengeService struct {
	db             *gorm.DB
	log            *logger.Logger
	challengeRepo  repos.ChallengeRepo
	enrollmentRepo repos.EnrollmentRepo
}

func NewChallengeService(db *gorm.DB, log *logger.Logger, challengeRepo repos.ChallengeRepo, enrollmentRepo repos.EnrollmentRepo) ChallengeService {
	serviceLog := log.With("service", "ChallengeService")
	return &challengeService{db: db, log: serviceLog, challengeRepo: challengeRepo, enrollmentRepo: enrollmentRepo}
}

func (cs *challengeService) ListChallenges(ctx context.Context) ([]*types.Challenge, error) {
	return cs.challengeRepo.List(ctx, nil)
}

func (cs *challengeService) GetChallenge(ctx context.Context, id uint) (*types.Challenge, error) {
	challenge, err := cs.challengeRepo.GetByID(ctx, nil, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrChallengeNotFound
	}
	return challenge, err
}

// Enroll returns the enrollment id for the (baby, challenge) pair. An
// existing active enrollment is returned as-is; the lookup and insert run
// in one transaction so racing enrolls cannot create two active rows.
func (cs *challengeService) Enroll(ctx context.Context, babyID, challengeID uint) (uint, error) {
	var enrollmentID uint
	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := cs.challengeRepo.GetByID(ctx, tx, challengeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrChallengeNotFound
			}
			return err
		}

		existing, err := cs.enrollmentRepo.GetActive(ctx, tx, babyID, challengeID)
		if err == nil {
			enrollmentID = existing.ID
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		created, err := cs.enrollmentRepo.Create(ctx, tx, &types.ChallengeEnrollment{
			BabyID:      babyID,
			ChallengeID: challengeID,
			Status:      types.EnrollmentStatusActive,
			StartedAt:   time.Now().UTC(),
		})
		if err != nil {
			return fmt.Errorf("failed to enroll in challenge: %w", err)
		}
		enrollmentID = created.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return enrollmentID, nil
}

func (cs *challengeService) ActiveEnrollments(ctx context.Context, babyID uint) ([]*types.ChallengeEnrollment, error) {
	return cs.enrollmentRepo.ListActiveByBaby(ctx, nil, babyID)
}
