package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// migrations holds one SQL script per schema version, applied in order.
// Scripts are additive: existing rows survive upgrades. The schema version is
// tracked through sqlite's user_version pragma.
var migrations = []string{
	// v1: suggestion history tables
	`CREATE TABLE IF NOT EXISTS suggestion (
		id INTEGER PRIMARY KEY,
		suggestion_name TEXT UNIQUE,
		occurrences INTEGER DEFAULT 0
	);
	CREATE TABLE IF NOT EXISTS suggestion_context (
		id INTEGER PRIMARY KEY,
		suggestion_key INTEGER,
		sentence TEXT,
		date TEXT,
		FOREIGN KEY(suggestion_key) REFERENCES suggestion(id)
	);`,

	// v2: part of speech tag per usage
	`ALTER TABLE suggestion_context ADD COLUMN part_of_speech TEXT NOT NULL DEFAULT 'none';`,
}

// SchemaVersion is the version the database is migrated to by Migrate.
var SchemaVersion = len(migrations)

// Migrate brings the database schema up to SchemaVersion. Each pending
// migration runs in its own transaction together with the version bump, so a
// failed migration leaves the database at the last fully applied version.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	current, err := currentVersion(ctx, db)
	if err != nil {
		return fmt.Errorf("currentVersion() > %w", err)
	}
	if current > SchemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported version %d", current, SchemaVersion)
	}

	for version := current; version < SchemaVersion; version++ {
		script := migrations[version]
		if err := RunInTx(ctx, db, func(ctx context.Context, tx *sqlx.Tx) error {
			if _, err := tx.ExecContext(ctx, script); err != nil {
				return fmt.Errorf("apply migration %d: %w", version+1, err)
			}
			// PRAGMA does not support placeholders
			if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", version+1)); err != nil {
				return fmt.Errorf("set user_version %d: %w", version+1, err)
			}
			return nil
		}); err != nil {
			return err
		}
	}
	return nil
}

func currentVersion(ctx context.Context, db *sqlx.DB) (int, error) {
	var version int
	if err := db.GetContext(ctx, &version, "PRAGMA user_version"); err != nil {
		return 0, fmt.Errorf("db.GetContext(user_version) > %w", err)
	}
	return version, nil
}
