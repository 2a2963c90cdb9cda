package main

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"

	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/phrazzld/taskboard-api/internal/platform/postgres"
)

// runMigrations executes the given goose command against the configured
// database using the migration scripts embedded in the postgres package.
func runMigrations(cfg *config.Config, command string) error {
	db, err := postgres.Open(context.Background(), cfg.Database.URL)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	migrations, err := fs.Sub(postgres.MigrationsFS, postgres.MigrationsDir)
	if err != nil {
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	goose.SetTableName("schema_migrations")
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	switch command {
	case "up":
		return goose.Up(db, ".")
	case "down":
		return goose.Down(db, ".")
	case "status":
		return goose.Status(db, ".")
	default:
		return fmt.Errorf("unknown migration command %q", command)
	}
}
