// Package testhelper starts a throwaway PostgreSQL for repository tests and
// seeds library fixtures into it.
package testhelper

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/heartmarshall/libris-backend/internal/adapter/postgres"
	"github.com/heartmarshall/libris-backend/internal/config"
)

// ExternalDSNEnv points the helpers at an already running database instead
// of a container. The schema is migrated either way.
const ExternalDSNEnv = "LIBRIS_TEST_DATABASE_URL"

var (
	once    sync.Once
	testDSN string
	initErr error
)

// SetupTestDB returns a pool on the shared test database. The first call in
// the process starts postgres:17-alpine and applies the migrations. The
// pool is closed on cleanup; the container outlives the test.
func SetupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		testDSN, initErr = prepare(ctx)
	})
	if initErr != nil {
		t.Fatalf("testhelper: %v", initErr)
	}

	pool, err := postgres.NewPool(context.Background(), dbConfig(testDSN))
	if err != nil {
		t.Fatalf("testhelper: %v", err)
	}
	t.Cleanup(pool.Close)

	return pool
}

func dbConfig(dsn string) config.DatabaseConfig {
	return config.DatabaseConfig{
		DSN:             dsn,
		MaxConns:        10,
		MinConns:        1,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: time.Minute,
	}
}

func prepare(ctx context.Context) (string, error) {
	dsn := os.Getenv(ExternalDSNEnv)
	if dsn == "" {
		var err error
		if dsn, err = startContainer(ctx); err != nil {
			return "", err
		}
	}

	pool, err := postgres.NewPool(ctx, dbConfig(dsn))
	if err != nil {
		return "", err
	}
	defer pool.Close()

	m, err := postgres.NewMigrator(pool)
	if err != nil {
		return "", err
	}
	defer m.Close()

	if _, err := m.Up(ctx); err != nil {
		return "", err
	}
	return dsn, nil
}

func startContainer(ctx context.Context) (string, error) {
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:17-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "libris",
				"POSTGRES_PASSWORD": "libris",
				"POSTGRES_DB":       "libris_test",
			},
			// The entrypoint restarts the server once after init.
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	if err != nil {
		return "", fmt.Errorf("start postgres container: %w", err)
	}

	endpoint, err := container.PortEndpoint(ctx, "5432/tcp", "")
	if err != nil {
		return "", fmt.Errorf("postgres endpoint: %w", err)
	}

	return fmt.Sprintf("postgres://libris:libris@%s/libris_test?sslmode=disable", endpoint), nil
}
