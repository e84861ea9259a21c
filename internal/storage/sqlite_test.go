//go:build sqlite

package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"tourgene/internal/model"
)

func newInitializedSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "tourgene.db"))
	require.NoError(t, store.Init(context.Background()))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStoreRequiresPath(t *testing.T) {
	store := NewSQLiteStore("")
	require.Error(t, store.Init(context.Background()))
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newInitializedSQLiteStore(t)

	cfg := model.RunConfig{
		VersionedRecord: Stamp(),
		RunID:           "run-1",
		CityCount:       4,
		PopulationSize:  16,
		Generations:     200,
		MutationRate:    1000,
		Selection:       "most_fit",
		Seed:            3,
	}
	require.NoError(t, store.SaveRunConfig(ctx, cfg))

	got, ok, err := store.GetRunConfig(ctx, "run-1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, cfg, got)

	record := model.BestTourRecord{
		VersionedRecord: Stamp(),
		RunID:           "run-1",
		Labels:          []string{"1", "2", "3", "4"},
		Distance:        4.0,
	}
	require.NoError(t, store.SaveBestTour(ctx, record))

	best, ok, err := store.GetBestTour(ctx, "run-1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, record, best)

	require.NoError(t, store.SaveHistory(ctx, "run-1", []float64{6.1, 4.8, 4.0}))
	history, ok, err := store.GetHistory(ctx, "run-1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []float64{6.1, 4.8, 4.0}, history)
}

func TestSQLiteStoreUpsert(t *testing.T) {
	ctx := context.Background()
	store := newInitializedSQLiteStore(t)

	first := model.RunConfig{VersionedRecord: Stamp(), RunID: "run-1", Generations: 10}
	second := model.RunConfig{VersionedRecord: Stamp(), RunID: "run-1", Generations: 20}
	require.NoError(t, store.SaveRunConfig(ctx, first))
	require.NoError(t, store.SaveRunConfig(ctx, second))

	got, ok, err := store.GetRunConfig(ctx, "run-1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 20, got.Generations)
}

func TestSQLiteStoreMissingRun(t *testing.T) {
	ctx := context.Background()
	store := newInitializedSQLiteStore(t)

	_, ok, err := store.GetRunConfig(ctx, "absent")
	require.NoError(t, err)
	require.False(t, ok)

	_, ok, err = store.GetBestTour(ctx, "absent")
	require.NoError(t, err)
	require.False(t, ok)

	_, ok, err = store.GetHistory(ctx, "absent")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSQLiteStoreListRuns(t *testing.T) {
	ctx := context.Background()
	store := newInitializedSQLiteStore(t)

	require.NoError(t, store.SaveRunConfig(ctx, model.RunConfig{VersionedRecord: Stamp(), RunID: "b"}))
	require.NoError(t, store.SaveHistory(ctx, "a", []float64{1}))

	runs, err := store.ListRuns(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, runs)
}
