package bootstrap

import (
	"context"
	"log/slog"

	"clinic-booking-api/internal/infra/db"
	"clinic-booking-api/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewDB,
		NewDBTX,
	),
	fx.Invoke(runMigrations),
)

func NewDB(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return pool, nil
}

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

func runMigrations(cfg config.Config) error {
	if err := db.MigrateUp(cfg.DB); err != nil {
		return err
	}
	slog.Info("Database migrations applied", "dir", cfg.DB.MigrationsDir)
	return nil
}
