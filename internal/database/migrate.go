package database

import (
	"context"
	"embed"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"github.com/pageza/foodtrace/backend/internal/models"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrations exposes the embedded SQL migrations to cmd/migrate.
func Migrations() embed.FS {
	return migrations
}

// RunMigrations brings the schema up to date. Postgres uses the versioned
// goose migrations; sqlite, used for local runs and tests, is auto-migrated
// from the models.
func RunMigrations(ctx context.Context, db *gorm.DB, log *slog.Logger) error {
	if db.Dialector.Name() == "sqlite" {
		log.Info("using gorm auto-migration for sqlite")
		return db.WithContext(ctx).AutoMigrate(&models.User{}, &models.Item{})
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	goose.SetBaseFS(migrations)
	goose.SetLogger(slog.NewLogLogger(log.Handler(), slog.LevelInfo))
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, sqlDB, "migrations"); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}
