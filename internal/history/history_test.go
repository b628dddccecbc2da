package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()
	store, err := Open(ctx, filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testRecord(operation, manager string, createdAt time.Time) *Record {
	return &Record{
		OperationID: uuid.NewString(),
		Operation:   operation,
		Manager:     manager,
		Args:        []string{"add", "-D", "left-pad"},
		Packages:    []string{"left-pad"},
		Cwd:         "/project",
		ExitCode:    0,
		Duration:    1200 * time.Millisecond,
		CreatedAt:   createdAt,
	}
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "nested", "share", "history.db")

	store, err := Open(ctx, dbPath)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Append(ctx, testRecord("install", "npm", time.Now().UTC())))

	records, err := store.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestAppendAndList(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	require.NoError(t, store.Append(ctx, testRecord("add", "pnpm", now.Add(-time.Minute))))
	require.NoError(t, store.Append(ctx, testRecord("install", "npm", now)))

	records, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Newest first
	assert.Equal(t, "install", records[0].Operation)
	assert.Equal(t, "npm", records[0].Manager)
	assert.Equal(t, "add", records[1].Operation)
	assert.Equal(t, []string{"add", "-D", "left-pad"}, records[1].Args)
	assert.Equal(t, []string{"left-pad"}, records[1].Packages)
	assert.Equal(t, 1200*time.Millisecond, records[1].Duration)
}

func TestListLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Append(ctx, testRecord("add", "bun", base.Add(time.Duration(i)*time.Second))))
	}

	records, err := store.List(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestListEmpty(t *testing.T) {
	store := openTestStore(t)

	records, err := store.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestPrune(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC()
	for i := 0; i < 10; i++ {
		require.NoError(t, store.Append(ctx, testRecord("add", "yarn", base.Add(time.Duration(i)*time.Second))))
	}

	deleted, err := store.Prune(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(6), deleted)

	records, err := store.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, records, 4)
}

func TestFailedOperationRecorded(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	rec := testRecord("remove", "pnpm", time.Now().UTC())
	rec.ExitCode = 1
	require.NoError(t, store.Append(ctx, rec))

	records, err := store.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 1, records[0].ExitCode)
}
