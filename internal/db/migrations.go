package db

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// schemaMigration marks one applied forward-only migration. There is no
// rollback path: each entry in the ordered list below runs at most once,
// inside its own transaction, and the applied name is recorded here.
type schemaMigration struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"uniqueIndex;not null"`
	AppliedAt time.Time `gorm:"not null"`
}

func (schemaMigration) TableName() string { return "schema_migrations" }

type migration struct {
	name string
	run  func(tx *gorm.DB) error
}

// Ordered migration list. Append only; never reorder or rename entries
// once they have shipped.
var migrations = []migration{
	{
		name: "2025-06-backfill_area_activity_counts",
		run: func(tx *gorm.DB) error {
			return tx.Exec(`UPDATE development_areas SET activity_count = 4 WHERE activity_count IS NULL OR activity_count = 0`).Error
		},
	},
	{
		name: "2025-07-backfill_enrollment_started_at",
		run: func(tx *gorm.DB) error {
			return tx.Exec(`UPDATE challenge_enrollments SET started_at = created_at WHERE started_at IS NULL`).Error
		},
	},
	{
		name: "2025-08-default_challenge_activity_duration",
		run: func(tx *gorm.DB) error {
			return tx.Exec(`UPDATE challenge_activities SET duration_min = 15 WHERE duration_min IS NULL OR duration_min = 0`).Error
		},
	},
}

func (s *DatabaseService) applyVersionedMigrations() error {
	if err := s.db.AutoMigrate(&schemaMigration{}); err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		var count int64
		if err := s.db.Model(&schemaMigration{}).Where("name = ?", m.name).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check migration %q: %w", m.name, err)
		}
		if count > 0 {
			continue
		}
		s.log.Info("Applying migration", "name", m.name)
		err := s.db.Transaction(func(tx *gorm.DB) error {
			if err := m.run(tx); err != nil {
				return err
			}
			return tx.Create(&schemaMigration{Name: m.name, AppliedAt: time.Now().UTC()}).Error
		})
		if err != nil {
			return fmt.Errorf("migration %q failed: %w", m.name, err)
		}
	}
	return nil
}
