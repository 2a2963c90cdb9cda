// Package testdb provides helpers for integration tests that need a real
// PostgreSQL instance. Tests call URL to find the database and skip when
// none is configured, so the suite stays green on machines without one.
package testdb

import (
	"database/sql"
	"io/fs"
	"os"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/taskboard-api/internal/platform/postgres"
)

// URL returns the test database URL from DATABASE_URL or
// TASKBOARD_TEST_DB_URL, or "" when neither is set.
func URL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	return os.Getenv("TASKBOARD_TEST_DB_URL")
}

// Open connects to the test database, skipping the test when no URL is
// configured, and migrates the schema to the current version.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	url := URL()
	if url == "" {
		t.Skip("no test database configured; set DATABASE_URL or TASKBOARD_TEST_DB_URL")
	}

	db, err := sql.Open("pgx", url)
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() { _ = db.Close() })

	migrate(t, db)
	return db
}

func migrate(t *testing.T, db *sql.DB) {
	t.Helper()

	migrations, err := fs.Sub(postgres.MigrationsFS, postgres.MigrationsDir)
	require.NoError(t, err)

	goose.SetTableName("schema_migrations")
	goose.SetBaseFS(migrations)
	require.NoError(t, goose.SetDialect("postgres"))
	require.NoError(t, goose.Up(db, "."))
}

// WithTx runs fn inside a transaction that is always rolled back, keeping
// integration tests isolated from each other.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.Begin()
	require.NoError(t, err, "failed to begin transaction")
	defer func() { _ = tx.Rollback() }()

	fn(t, tx)
}
