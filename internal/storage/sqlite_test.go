package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T, path string) *SQLite {
	t.Helper()
	db, err := NewSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Init(context.Background()))
	return db
}

func TestSQLite_GetMissingKey(t *testing.T) {
	db := newTestSQLite(t, filepath.Join(t.TempDir(), "rickmorty.db"))

	_, err := db.Get(context.Background(), "isDarkMode")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLite_SetUpsertsAndSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rickmorty.db")
	ctx := context.Background()

	db := newTestSQLite(t, path)
	require.NoError(t, db.Set(ctx, "liked-1", "true"))
	require.NoError(t, db.Set(ctx, "liked-1", "false"))
	require.NoError(t, db.Close())

	reopened := newTestSQLite(t, path)
	got, err := reopened.Get(ctx, "liked-1")
	require.NoError(t, err)
	assert.Equal(t, "false", got)
}

func TestSQLite_KeysByPrefix(t *testing.T) {
	db := newTestSQLite(t, filepath.Join(t.TempDir(), "rickmorty.db"))
	ctx := context.Background()

	for _, key := range []string{"liked-2", "isDarkMode", "liked-10", "liked_x"} {
		require.NoError(t, db.Set(ctx, key, "true"))
	}

	keys, err := db.Keys(ctx, "liked-")
	require.NoError(t, err)
	assert.Equal(t, []string{"liked-10", "liked-2"}, keys)

	none, err := db.Keys(ctx, "missing-")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSQLite_CheckWritableLeavesNoRow(t *testing.T) {
	db := newTestSQLite(t, filepath.Join(t.TempDir(), "rickmorty.db"))
	ctx := context.Background()

	require.NoError(t, db.CheckWritable(ctx))
	_, err := db.Get(ctx, "__write_check__")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLite_CloseNil(t *testing.T) {
	var db *SQLite
	assert.NoError(t, db.Close())
}
