package psql

import (
	"context"
	"fmt"
	"itembox/itembox/config"
	"itembox/itembox/sources/psql/models"
	"itembox/itembox/utils/logging"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Database struct {
	DB *gorm.DB
}

// NewDatabase opens the configured driver and migrates the schema.
func NewDatabase(ctx context.Context, cfg config.Config) (*Database, error) {
	switch cfg.DBDriver {
	case "postgres":
		connStr := fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.DBHost,
			cfg.DBPort,
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBName,
		)
		logging.AppLogger.Info("Connecting to database",
			zap.String("driver", "postgres"),
			zap.String("host", cfg.DBHost),
			zap.String("dbname", cfg.DBName),
		)
		return Open(ctx, postgres.Open(connStr))
	case "sqlite", "":
		logging.AppLogger.Info("Connecting to database",
			zap.String("driver", "sqlite"),
			zap.String("path", cfg.DBPath),
		)
		return Open(ctx, sqlite.Open(cfg.DBPath))
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.DBDriver)
	}
}

// Open connects through an arbitrary dialector. Constraint violations are
// translated to gorm.ErrDuplicatedKey and gorm.ErrForeignKeyViolated.
func Open(ctx context.Context, dialector gorm.Dialector) (*Database, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if dialector.Name() == "sqlite" {
		// sqlite allows a single writer, and each :memory: connection is its own database.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		if err := db.WithContext(ctx).Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("enable foreign keys: %w", err)
		}
	}

	err = db.WithContext(ctx).
		AutoMigrate(
			&models.User{},
			&models.Item{},
			&models.Token{},
			&models.TokenData{},
		)
	if err != nil {
		return nil, fmt.Errorf("failed to auto-migrate: %w", err)
	}

	return &Database{DB: db}, nil
}

func (db *Database) Ping(ctx context.Context) error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (db *Database) Close() {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return
	}
	sqlDB.Close()
}
