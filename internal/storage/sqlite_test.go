package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestSQLite(t *testing.T) Leaderboard {
	t.Helper()
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteContract(t *testing.T) {
	leaderboardContract(t, openTestSQLite)
}

func TestSQLiteOpenCreatesNestedDirs(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := OpenSQLite(dbPath)
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "Database file was not created in nested directory")
}

func TestSQLiteReopenKeepsScores(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "scores.db")

	store, err := OpenSQLite(dbPath)
	require.NoError(t, err)
	saved, err := store.SubmitScore(ctx, "ace", 250)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = OpenSQLite(dbPath)
	require.NoError(t, err)
	defer store.Close()

	records, err := store.TopScores(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, saved.ID, records[0].ID)
	assert.WithinDuration(t, saved.CreatedAt, records[0].CreatedAt, 0)
}

func TestSQLiteInMemory(t *testing.T) {
	store, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer store.Close()

	_, err = store.SubmitScore(context.Background(), "mem", 1)
	require.NoError(t, err)
}

func TestOpenByDriverName(t *testing.T) {
	lb, err := Open("sqlite", filepath.Join(t.TempDir(), "x.db"))
	require.NoError(t, err)
	defer lb.Close()
	assert.IsType(t, &SQLiteStore{}, lb)
}

func TestSQLiteEmptyPath(t *testing.T) {
	_, err := OpenSQLite("")
	assert.Error(t, err)
}

func TestOpenFailureReturnsNilLeaderboard(t *testing.T) {
	lb, err := Open("sqlite", "")
	assert.Error(t, err)
	assert.Nil(t, lb)
}
