package db_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/lexiflash/internal/db"
)

func TestOpen_AppliesMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexiflash.db")

	database, err := db.Open("file:" + path)
	require.NoError(t, err)
	defer database.Close()

	var count int
	err = database.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	for _, table := range []string{"profiles", "vocabulary_items", "review_history", "vocabulary_imports"} {
		var name string
		err := database.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		assert.NoError(t, err, "table %s should exist", table)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexiflash.db")

	database, err := db.Open("file:" + path)
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, db.Migrate(context.Background(), database.DB))

	var count int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&count))
	assert.Equal(t, 3, count)
}
