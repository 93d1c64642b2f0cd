package services

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/brightsteps/brightsteps-backend/internal/repos"
)

func newProfileService(t *testing.T) (ProfileService, uint) {
	t.Helper()
	conn := testDB(t)
	log := testLogger(t)
	parent := seedBaby(t, conn, 5).ParentID
	return NewProfileService(conn, log, repos.NewBabyRepo(conn, log), testGoalTable(t)), parent
}

func TestDedupeGoals(t *testing.T) {
	cases := []struct {
		in   []string
		want []string
	}{
		{[]string{"Physical", "Physical", "Cognitive"}, []string{"Physical", "Cognitive"}},
		{[]string{"  Physical ", "Physical"}, []string{"Physical"}},
		{[]string{"", "  ", "Linguistic"}, []string{"Linguistic"}},
		{nil, []string{}},
	}
	for _, tc := range cases {
		if got := dedupeGoals(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("dedupeGoals(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestCreateProfile_Validation(t *testing.T) {
	svc, parentID := newProfileService(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input CreateProfileInput
		want  error
	}{
		{"missing name", CreateProfileInput{ParentID: parentID, AgeGroup: "3–6 Months", Goals: []string{"Physical"}}, ErrBabyNameRequired},
		{"missing age group", CreateProfileInput{ParentID: parentID, BabyName: "Juno", Goals: []string{"Physical"}}, ErrAgeGroupRequired},
		{"no goals", CreateProfileInput{ParentID: parentID, BabyName: "Juno", AgeGroup: "3–6 Months"}, ErrGoalsRequired},
		{"blank goals", CreateProfileInput{ParentID: parentID, BabyName: "Juno", AgeGroup: "3–6 Months", Goals: []string{" ", ""}}, ErrGoalsRequired},
	}
	for _, tc := range cases {
		if _, err := svc.CreateProfile(ctx, tc.input); !errors.Is(err, tc.want) {
			t.Errorf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestCreateProfile_MapsAgeGroupAndDedupes(t *testing.T) {
	svc, parentID := newProfileService(t)

	baby, err := svc.CreateProfile(context.Background(), CreateProfileInput{
		ParentID: parentID,
		BabyName: "  Juno ",
		AgeGroup: "3–6 Months",
		Goals:    []string{"Physical", "Physical", "Cognitive"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if baby.BabyName != "Juno" {
		t.Errorf("name not trimmed: %q", baby.BabyName)
	}
	if baby.AgeMonths != 5 {
		t.Errorf("3–6 Months should map to 5 months, got %d", baby.AgeMonths)
	}
	if baby.UUID == uuid.Nil {
		t.Errorf("expected a profile token")
	}
	var goals []string
	if err := json.Unmarshal(baby.DevelopmentGoals, &goals); err != nil {
		t.Fatalf("goals not valid JSON: %v", err)
	}
	if !reflect.DeepEqual(goals, []string{"Physical", "Cognitive"}) {
		t.Errorf("goals not deduped: %v", goals)
	}
}

func TestGetOwnedByUUID_OwnershipCheck(t *testing.T) {
	svc, parentID := newProfileService(t)
	ctx := context.Background()

	baby, err := svc.CreateProfile(ctx, CreateProfileInput{
		ParentID: parentID,
		BabyName: "Juno",
		AgeGroup: "3–6 Months",
		Goals:    []string{"Physical"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.GetOwnedByUUID(ctx, baby.UUID, parentID); err != nil {
		t.Fatalf("owner lookup failed: %v", err)
	}
	if _, err := svc.GetOwnedByUUID(ctx, baby.UUID, parentID+1); !errors.Is(err, ErrProfileNotOwned) {
		t.Fatalf("foreign parent should get ErrProfileNotOwned, got %v", err)
	}
	if _, err := svc.GetOwnedByUUID(ctx, uuid.New(), parentID); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("unknown token should get ErrProfileNotFound, got %v", err)
	}
}
