package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yukikurage/acme-dashboard/internal/config"
	"github.com/yukikurage/acme-dashboard/internal/models"
)

// Connect opens the Postgres connection pool. SQL is logged through zap
// with bound parameters hidden.
func Connect(cfg *config.Config, log *zap.SugaredLogger) (*gorm.DB, error) {
	level := logger.Warn
	if cfg.LogLevel == "debug" {
		level = logger.Info
	}

	gormLogger := logger.New(
		zap.NewStdLog(log.Desugar()),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
		},
	)

	// TranslateError turns constraint violations into gorm.ErrDuplicatedKey
	// and friends, which the repositories match on.
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql db: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Infow("database connection established")
	return db, nil
}

// Models lists every table in dependency order.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Company{},
		&models.UserRole{},
		&models.Project{},
		&models.Record{},
		&models.Task{},
		&models.Comment{},
		&models.Invitation{},
		&models.Customer{},
		&models.Invoice{},
		&models.Revenue{},
	}
}

func Migrate(db *gorm.DB, log *zap.SugaredLogger) error {
	log.Infow("running database migrations")
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Infow("database migrations completed")
	return nil
}
