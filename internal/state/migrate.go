package state

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

var errNotOpened = errors.New("database not opened")

func newMigrationProvider(db *sql.DB) (*goose.Provider, error) {
	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return nil, err
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, fsys)
	if err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}
	return provider, nil
}

// Migrate applies all pending schema migrations.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	if s.db == nil {
		return errNotOpened
	}
	return MigrateWithDB(ctx, s.db, s.logger)
}

// MigrateWithDB applies pending migrations on a raw database connection,
// logging each applied version at debug level.
func MigrateWithDB(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	provider, err := newMigrationProvider(db)
	if err != nil {
		return err
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	for _, r := range results {
		logger.Debug("applied migration", "version", r.Source.Version, "file", r.Source.Path, "duration", r.Duration)
	}
	return nil
}

// GetMigrationVersion returns the current schema version.
func (s *SQLiteStore) GetMigrationVersion(ctx context.Context) (int64, error) {
	if s.db == nil {
		return 0, errNotOpened
	}
	provider, err := newMigrationProvider(s.db)
	if err != nil {
		return 0, err
	}
	return provider.GetDBVersion(ctx)
}
