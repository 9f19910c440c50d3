package database

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() {
		assert.NoError(t, db.Close())
	})
	return db
}

func TestMigrate(t *testing.T) {
	ctx := context.Background()

	t.Run("brings a fresh database to the latest version", func(t *testing.T) {
		db := newMemoryDB(t)
		require.NoError(t, Migrate(ctx, db))

		version, err := currentVersion(ctx, db)
		require.NoError(t, err)
		assert.Equal(t, SchemaVersion, version)

		// all columns of the latest schema are queryable
		var count int
		err = db.GetContext(ctx, &count,
			"SELECT COUNT(*) FROM suggestion_context WHERE part_of_speech = 'none'")
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("is idempotent and keeps existing rows", func(t *testing.T) {
		db := newMemoryDB(t)
		require.NoError(t, Migrate(ctx, db))

		_, err := db.ExecContext(ctx,
			"INSERT INTO suggestion (suggestion_name, occurrences) VALUES ('dog', 2)")
		require.NoError(t, err)

		require.NoError(t, Migrate(ctx, db))

		var occurrences int
		require.NoError(t, db.GetContext(ctx, &occurrences,
			"SELECT occurrences FROM suggestion WHERE suggestion_name = 'dog'"))
		assert.Equal(t, 2, occurrences)
	})

	t.Run("upgrades a version 1 database without losing contexts", func(t *testing.T) {
		db := newMemoryDB(t)
		_, err := db.ExecContext(ctx, migrations[0])
		require.NoError(t, err)
		_, err = db.ExecContext(ctx, "PRAGMA user_version = 1")
		require.NoError(t, err)
		_, err = db.ExecContext(ctx,
			"INSERT INTO suggestion (id, suggestion_name, occurrences) VALUES (1, 'dog', 1)")
		require.NoError(t, err)
		_, err = db.ExecContext(ctx,
			"INSERT INTO suggestion_context (suggestion_key, sentence, date) VALUES (1, 'hi', '20260801')")
		require.NoError(t, err)

		require.NoError(t, Migrate(ctx, db))

		var pos string
		require.NoError(t, db.GetContext(ctx, &pos,
			"SELECT part_of_speech FROM suggestion_context WHERE suggestion_key = 1"))
		assert.Equal(t, "none", pos)
	})

	t.Run("rejects a database from a newer version", func(t *testing.T) {
		db := newMemoryDB(t)
		_, err := db.ExecContext(ctx, "PRAGMA user_version = 99")
		require.NoError(t, err)

		err = Migrate(ctx, db)
		assert.ErrorContains(t, err, "newer than supported")
	})
}
