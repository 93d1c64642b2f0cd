package db

import (
	"fmt"
	"sync/atomic"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/brightsteps/brightsteps-backend/internal/logger"
	"github.com/brightsteps/brightsteps-backend/internal/types"
	"github.com/brightsteps/brightsteps-backend/internal/utils"
)

type DatabaseService struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewDatabaseService opens the single-file SQLite database, or Postgres
// when DATABASE_URL is set.
func NewDatabaseService(log *logger.Logger) (*DatabaseService, error) {
	serviceLog := log.With("service", "DatabaseService")

	cfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}

	var (
		db  *gorm.DB
		err error
	)
	if dsn := utils.GetEnv("DATABASE_URL", "", log); dsn != "" {
		serviceLog.Info("Connecting to Postgres...")
		db, err = gorm.Open(postgres.Open(dsn), cfg)
	} else {
		path := utils.GetEnv("DATABASE_PATH", "brightsteps.db", log)
		serviceLog.Info("Opening SQLite database", "path", path)
		db, err = gorm.Open(sqlite.Open(path+"?_foreign_keys=on"), cfg)
	}
	if err != nil {
		serviceLog.Error("Failed to open database", "error", err)
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &DatabaseService{db: db, log: serviceLog}, nil
}

var memoryDBSeq atomic.Int64

// NewMemoryDatabaseService opens a private in-memory SQLite database.
// Used by store-level tests; each call gets its own isolated database.
func NewMemoryDatabaseService(log *logger.Logger) (*DatabaseService, error) {
	serviceLog := log.With("service", "DatabaseService")
	name := fmt.Sprintf("file:memdb%d?mode=memory&cache=shared&_foreign_keys=on", memoryDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(name), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	return &DatabaseService{db: db, log: serviceLog}, nil
}

// AutoMigrateAll creates the base schema, then applies the ordered
// forward-only migrations.
func (s *DatabaseService) AutoMigrateAll() error {
	s.log.Info("Auto migrating tables...")
	err := s.db.AutoMigrate(
		&types.User{},
		&types.Parent{},
		&types.Baby{},
		&types.AbilityQuestion{},
		&types.AbilityAssessment{},
		&types.PersonalizedActivity{},
		&types.DevelopmentArea{},
		&types.AreaActivity{},
		&types.TaskCompletion{},
		&types.Challenge{},
		&types.ChallengeActivity{},
		&types.ChallengeEnrollment{},
	)
	if err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return fmt.Errorf("auto migration failed: %w", err)
	}
	return s.applyVersionedMigrations()
}

func (s *DatabaseService) DB() *gorm.DB {
	return s.db
}
