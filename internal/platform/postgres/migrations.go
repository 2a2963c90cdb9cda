package postgres

import "embed"

// MigrationsFS holds the goose migration scripts so the server binary can
// bring a fresh database up to the current schema without shipping SQL
// files alongside it.
//
//go:embed migrations/*.sql
var MigrationsFS embed.FS

// MigrationsDir is the path of the migration scripts inside MigrationsFS.
const MigrationsDir = "migrations"
