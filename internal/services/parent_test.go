package services

import (
	"context"
	"errors"
	"testing"

	"github.com/brightsteps/brightsteps-backend/internal/repos"
	"github.com/brightsteps/brightsteps-backend/internal/types"
)

func TestClassifyContact(t *testing.T) {
	cases := []struct {
		in       string
		wantType string
		wantErr  error
	}{
		{"jamie@example.com", types.ContactTypeEmail, nil},
		{"  jamie@example.com  ", types.ContactTypeEmail, nil},
		{"07700900123", types.ContactTypeMobile, nil},
		{"+1 (555) 010-9988", types.ContactTypeMobile, nil},
		{"", "", ErrEmptyContact},
		{"   ", "", ErrEmptyContact},
		{"a@b", "", ErrInvalidContact},
		{"no-at-sign-no-digits", "", ErrInvalidContact},
	}
	for _, tc := range cases {
		got, err := ClassifyContact(tc.in)
		if !errors.Is(err, tc.wantErr) {
			t.Errorf("ClassifyContact(%q) error = %v, want %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.wantType {
			t.Errorf("ClassifyContact(%q) = %q, want %q", tc.in, got, tc.wantType)
		}
	}
}

func TestGetOrCreateParent_Idempotent(t *testing.T) {
	conn := testDB(t)
	log := testLogger(t)
	svc := NewParentService(conn, log, repos.NewParentRepo(conn, log))
	ctx := context.Background()

	first, err := svc.GetOrCreateParent(ctx, "jamie@example.com")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if first.ContactType != types.ContactTypeEmail {
		t.Errorf("expected email classification, got %q", first.ContactType)
	}

	second, err := svc.GetOrCreateParent(ctx, "  jamie@example.com ")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("same contact must resolve to the same parent: %d vs %d", second.ID, first.ID)
	}

	var count int64
	if err := conn.Model(&types.Parent{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one parent row, got %d", count)
	}
}

func TestGetOrCreateParent_RejectsInvalid(t *testing.T) {
	conn := testDB(t)
	log := testLogger(t)
	svc := NewParentService(conn, log, repos.NewParentRepo(conn, log))

	if _, err := svc.GetOrCreateParent(context.Background(), "not a contact"); !errors.Is(err, ErrInvalidContact) {
		t.Fatalf("expected ErrInvalidContact, got %v", err)
	}
}
