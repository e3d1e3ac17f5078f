//go:build integration

package integration

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"clinic-booking-api/internal/infra/db"
	"clinic-booking-api/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testDBName   = "clinic_test"
	testDBUser   = "test"
	testDBPass   = "testpass"
	postgresTag  = "postgres:16-alpine"
	startTimeout = 60 * time.Second
)

// setupDatabase starts a throwaway postgres container, applies all
// migrations and returns a connected pool.
func setupDatabase(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx, postgresTag,
		postgres.WithDatabase(testDBName),
		postgres.WithUsername(testDBUser),
		postgres.WithPassword(testDBPass),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(startTimeout),
		),
	)
	require.NoError(t, err, "failed to start postgres container")
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	dbCfg := config.DBConfig{
		Host:          host,
		Port:          port.Port(),
		User:          testDBUser,
		Password:      testDBPass,
		DBName:        testDBName,
		SSLMode:       "disable",
		TimeZone:      "UTC",
		MigrationsDir: migrationsDir(t),
	}

	require.NoError(t, db.MigrateUp(dbCfg), "failed to apply migrations")

	pool, cleanup, err := db.Connect(dbCfg)
	require.NoError(t, err, "failed to connect to test database")
	t.Cleanup(cleanup)

	return pool
}

func migrationsDir(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Join(filepath.Dir(thisFile), "..", "..", "db", "migrations")
}
