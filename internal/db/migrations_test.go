package db

import (
	"testing"

	"github.com/brightsteps/brightsteps-backend/internal/logger"
)

func newTestService(t *testing.T) *DatabaseService {
	t.Helper()
	log, err := logger.New("production")
	if err != nil {
		t.Fatalf("logger init failed: %v", err)
	}
	svc, err := NewMemoryDatabaseService(log)
	if err != nil {
		t.Fatalf("db init failed: %v", err)
	}
	return svc
}

func TestAutoMigrateAll_RecordsMigrations(t *testing.T) {
	svc := newTestService(t)
	if err := svc.AutoMigrateAll(); err != nil {
		t.Fatalf("migration failed: %v", err)
	}

	var applied []schemaMigration
	if err := svc.DB().Order("id").Find(&applied).Error; err != nil {
		t.Fatalf("reading schema_migrations failed: %v", err)
	}
	if len(applied) != len(migrations) {
		t.Fatalf("expected %d applied migrations, got %d", len(migrations), len(applied))
	}
	for i, m := range migrations {
		if applied[i].Name != m.name {
			t.Errorf("migration %d = %q, want %q", i, applied[i].Name, m.name)
		}
		if applied[i].AppliedAt.IsZero() {
			t.Errorf("migration %q missing applied timestamp", m.name)
		}
	}
}

func TestAutoMigrateAll_Idempotent(t *testing.T) {
	svc := newTestService(t)
	if err := svc.AutoMigrateAll(); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	if err := svc.AutoMigrateAll(); err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	var count int64
	if err := svc.DB().Model(&schemaMigration{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != int64(len(migrations)) {
		t.Fatalf("re-running must not re-apply: got %d rows, want %d", count, len(migrations))
	}
}
