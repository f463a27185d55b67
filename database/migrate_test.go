package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
)

func TestMigrateDB_AppliesEmbeddedMigrations(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var gotDir string
	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		gotDir = dir
		return nil
	}
	t.Cleanup(func() { gooseUpContext = orig })

	err = MigrateDB(context.Background(), db)
	require.NoError(t, err)
	require.Equal(t, "migrations", gotDir)
}

func TestMigrateDB_PropagatesFailure(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	t.Cleanup(func() { gooseUpContext = orig })

	err = MigrateDB(context.Background(), db)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to apply migrations")
}

func TestMigrationFilesEmbedded(t *testing.T) {
	entries, err := migrations.ReadDir("migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entries)
}
