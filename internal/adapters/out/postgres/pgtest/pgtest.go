// Package pgtest opens throwaway databases with the workflow schema for
// adapter tests: an in-memory SQLite database per test, or a PostgreSQL
// container per suite.
package pgtest

import (
	"context"
	"strings"
	"testing"
	"time"

	adapter "marketplace/internal/adapters/out/postgres"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Tables lists the workflow tables for TRUNCATE statements.
const Tables = "projects, quotations, parts, part_quotes, orders"

// NewSQLite returns a migrated in-memory SQLite database private to t.
func NewSQLite(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Discard,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, adapter.Migrate(db))
	return db
}

// StartPostgres runs a PostgreSQL container and returns it with a migrated
// connection opened through adapter.Open.
func StartPostgres(ctx context.Context) (*postgres.PostgresContainer, *gorm.DB, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return container, nil, err
	}

	db, err := adapter.Open(dsn, adapter.PoolConfig{})
	if err != nil {
		return container, nil, err
	}
	if err = adapter.Migrate(db); err != nil {
		return container, nil, err
	}

	return container, db, nil
}
