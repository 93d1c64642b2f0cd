package services

import (
	"context"
	"errors"
	"testing"

	"github.com/brightsteps/brightsteps-backend/internal/repos"
	"github.com/brightsteps/brightsteps-backend/internal/types"
)

func newChallengeService(t *testing.T) (ChallengeService, *types.Baby, *types.Challenge) {
	t.Helper()
	conn := testDB(t)
	log := testLogger(t)
	baby := seedBaby(t, conn, 8)
	challenge := &types.Challenge{DurationDays: 30, Title: "30-Day Giggle Quest"}
	if err := conn.Create(challenge).Error; err != nil {
		t.Fatalf("seed challenge failed: %v", err)
	}
	svc := NewChallengeService(conn, log, repos.NewChallengeRepo(conn, log), repos.NewEnrollmentRepo(conn, log))
	return svc, baby, challenge
}

func TestEnroll_Deduplicates(t *testing.T) {
	svc, baby, challenge := newChallengeService(t)
	ctx := context.Background()

	first, err := svc.Enroll(ctx, baby.ID, challenge.ID)
	if err != nil {
		t.Fatalf("first enroll failed: %v", err)
	}
	if first == 0 {
		t.Fatalf("expected an enrollment id")
	}

	second, err := svc.Enroll(ctx, baby.ID, challenge.ID)
	if err != nil {
		t.Fatalf("second enroll failed: %v", err)
	}
	if second != first {
		t.Fatalf("repeat enroll must return the existing id: got %d, want %d", second, first)
	}

	active, err := svc.ActiveEnrollments(ctx, baby.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("expected exactly one active enrollment, got %d", len(active))
	}
}

func TestEnroll_UnknownChallenge(t *testing.T) {
	svc, baby, _ := newChallengeService(t)

	_, err := svc.Enroll(context.Background(), baby.ID, 9999)
	if !errors.Is(err, ErrChallengeNotFound) {
		t.Fatalf("expected ErrChallengeNotFound, got %v", err)
	}
}

func TestGetChallenge_NotFound(t *testing.T) {
	svc, _, _ := newChallengeService(t)

	_, err := svc.GetChallenge(context.Background(), 424242)
	if !errors.Is(err, ErrChallengeNotFound) {
		t.Fatalf("expected ErrChallengeNotFound, got %v", err)
	}
}
