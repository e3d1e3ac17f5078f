package db

import (
	"fmt"

	"clinic-booking-api/internal/pkg/config"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// MigrateUp applies pending goose migrations from the configured directory.
func MigrateUp(cfg config.DBConfig) error {
	sqlDB, err := goose.OpenDBWithDriver("pgx", cfg.BuildDSN())
	if err != nil {
		return fmt.Errorf("failed to open database for migration: %w", err)
	}
	defer sqlDB.Close()

	if err := goose.Up(sqlDB, cfg.MigrationsDir); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}
