// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration runs the schema migrations (users, table configurations,
// demo data) through golang-migrate.
//
// Migrations run at startup so that the tables.configuration unique
// constraint exists before the first table view is served. They are read from
// the binary unless a directory on disk is configured, and their version is
// tracked in a dedicated table so the add-on can share a database with a host
// application that uses golang-migrate itself.
package migration

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// pgx5 driver registers "pgx5" scheme for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	// file source reads .sql files from disk.
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// VersionTable records the applied migration version.
const VersionTable = "tables_schema_migrations"

// Source selects where migrations are read from.
type Source struct {
	// Path is a directory on disk; it takes precedence over FS.
	Path string

	// FS holds embedded migrations at its root.
	FS fs.FS
}

// RunUp applies all pending UP migrations.
//
// # Parameters
//   - dsn: A libpq-compatible DSN or postgres:// URL.
//   - from: Where the migrations are read from.
//   - logger: Structured logger for migration events.
//   - verbose: Forward golang-migrate's verbose output at debug level.
func RunUp(dsn string, from Source, logger *slog.Logger, verbose bool) error {
	migrator, err := newMigrator(dsn, from)
	if err != nil {
		return err
	}
	defer func() {
		sourceError, dbError := migrator.Close()
		if sourceError != nil {
			logger.Error("migration_source_close_failed", slog.Any("error", sourceError))
		}
		if dbError != nil {
			logger.Error("migration_db_close_failed", slog.Any("error", dbError))
		}
	}()

	// Bridge golang-migrate logging into slog.
	migrator.Log = &migrateLogger{logger: logger, verbose: verbose}

	currentVersion, isDirty, err := migrator.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("migration: failed to get current version: %w", err)
	}

	if isDirty {
		return fmt.Errorf("migration: database is in a dirty state at version %d (manual intervention required)", currentVersion)
	}

	logger.Info("migration_started", slog.Int("current_version", int(currentVersion)))

	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("migration_already_up_to_date")
			return nil
		}
		return fmt.Errorf("migration: up failed: %w", err)
	}

	newVersion, _, _ := migrator.Version()
	logger.Info("migration_successful",
		slog.Int("from_version", int(currentVersion)),
		slog.Int("to_version", int(newVersion)),
	)

	return nil
}

func newMigrator(dsn string, from Source) (*migrate.Migrate, error) {
	target, err := databaseURL(dsn)
	if err != nil {
		return nil, fmt.Errorf("migration: %w", err)
	}

	if from.Path != "" {
		migrator, err := migrate.New("file://"+from.Path, target)
		if err != nil {
			return nil, fmt.Errorf("migration: failed to initialize: %w", err)
		}
		return migrator, nil
	}

	if from.FS == nil {
		return nil, errors.New("migration: no migration source configured")
	}

	driver, err := iofs.New(from.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("migration: failed to read embedded migrations: %w", err)
	}

	migrator, err := migrate.NewWithSourceInstance("iofs", driver, target)
	if err != nil {
		return nil, fmt.Errorf("migration: failed to initialize: %w", err)
	}
	return migrator, nil
}

// databaseURL rewrites dsn to the pgx5:// scheme required by golang-migrate/v4
// and points it at [VersionTable] unless the DSN names a table already.
func databaseURL(dsn string) (string, error) {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(dsn, prefix); ok {
			dsn = "pgx5://" + rest
			break
		}
	}

	if !strings.HasPrefix(dsn, "pgx5://") {
		return "", errors.New("DATABASE_URL must be a postgres:// URL")
	}

	parsed, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid DATABASE_URL: %w", err)
	}

	query := parsed.Query()
	if query.Get("x-migrations-table") == "" {
		query.Set("x-migrations-table", VersionTable)
	}
	parsed.RawQuery = query.Encode()

	return parsed.String(), nil
}

// migrateLogger adapts golang-migrate's logger interface to slog.
type migrateLogger struct {
	logger  *slog.Logger
	verbose bool
}

// Printf implements migrate.Logger.
func (l *migrateLogger) Printf(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// Verbose implements migrate.Logger.
func (l *migrateLogger) Verbose() bool {
	return l.verbose
}
