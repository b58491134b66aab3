//go:build sqlite

package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"evoroot/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "evoroot.db"))
	require.NoError(t, store.Init(context.Background()))
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})
	return store
}

func TestSQLiteStoreRequiresInit(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "evoroot.db"))
	_, _, err := store.GetRun(context.Background(), "r1")
	require.Error(t, err)
}

func TestSQLiteStoreRunRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)

	record := testRun("r1", "2026-08-30T10:00:00Z")
	require.NoError(t, store.SaveRun(ctx, record))

	got, ok, err := store.GetRun(ctx, "r1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, record, got)

	_, ok, err = store.GetRun(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSQLiteStoreUpsertsOnRunID(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)

	record := testRun("r1", "2026-08-30T10:00:00Z")
	require.NoError(t, store.SaveRun(ctx, record))

	record.BestFitness = 0.5
	require.NoError(t, store.SaveRun(ctx, record))

	records, err := store.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, 0.5, records[0].BestFitness)
}

func TestSQLiteStoreListRunsOrdersByCreation(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)

	require.NoError(t, store.SaveRun(ctx, testRun("b", "2026-08-30T10:00:00Z")))
	require.NoError(t, store.SaveRun(ctx, testRun("a", "2026-08-30T10:00:00Z")))
	require.NoError(t, store.SaveRun(ctx, testRun("c", "2026-08-30T09:00:00Z")))

	records, err := store.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, "c", records[0].RunID)
	require.Equal(t, "a", records[1].RunID)
	require.Equal(t, "b", records[2].RunID)
}

func TestSQLiteStoreSeriesRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)

	series := model.SeriesRecord{
		RunID:      "r1",
		Best:       []float64{9, 3, 1},
		Average:    []float64{-20, -5, 2},
		MaxBest:    9,
		MaxAverage: 2,
	}
	require.NoError(t, store.SaveSeries(ctx, series))

	got, ok, err := store.GetSeries(ctx, "r1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, series.Best, got.Best)
	require.Equal(t, series.Average, got.Average)
}

func TestSQLiteStoreReset(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)

	require.NoError(t, store.SaveRun(ctx, testRun("r1", "2026-08-30T10:00:00Z")))
	require.NoError(t, store.SaveSeries(ctx, model.SeriesRecord{RunID: "r1", Best: []float64{1}}))

	require.NoError(t, store.Reset(ctx))

	records, err := store.ListRuns(ctx)
	require.NoError(t, err)
	require.Empty(t, records)

	_, ok, err := store.GetSeries(ctx, "r1")
	require.NoError(t, err)
	require.False(t, ok)
}
