package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"evoroot/internal/model"
)

func testRun(runID, createdAt string) model.RunRecord {
	return model.RunRecord{
		VersionedRecord: model.VersionedRecord{
			SchemaVersion: model.CurrentSchemaVersion,
			CodecVersion:  model.CurrentCodecVersion,
		},
		RunID:        runID,
		CreatedAtUTC: createdAt,
		Objective:    "cubic_478",
		Selection:    "elitism",
		Label:        "elitism",
		Seed:         1,
		Generations:  42,
		BestValue:    478.0001,
		BestFitness:  0.9,
		StopReason:   model.StopReasonBudget,
	}
}

func TestMemoryStoreRunRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Init(ctx))

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

func TestMemoryStoreSaveRunOverwrites(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Init(ctx))

	record := testRun("r1", "2026-08-30T10:00:00Z")
	require.NoError(t, store.SaveRun(ctx, record))

	record.Generations = 99
	require.NoError(t, store.SaveRun(ctx, record))

	got, ok, err := store.GetRun(ctx, "r1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 99, got.Generations)
}

func TestMemoryStoreListRunsOrdersByCreation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Init(ctx))

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

func TestMemoryStoreSeriesRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Init(ctx))

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
	require.Equal(t, series, got)

	_, ok, err = store.GetSeries(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryStoreReset(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Init(ctx))
	require.NoError(t, store.SaveRun(ctx, testRun("r1", "2026-08-30T10:00:00Z")))

	require.NoError(t, store.Reset(ctx))

	records, err := store.ListRuns(ctx)
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestNewStoreFactory(t *testing.T) {
	store, err := NewStore("", "")
	require.NoError(t, err)
	require.IsType(t, &MemoryStore{}, store)

	store, err = NewStore("memory", "")
	require.NoError(t, err)
	require.IsType(t, &MemoryStore{}, store)

	_, err = NewStore("postgres", "")
	require.Error(t, err)

	require.NoError(t, CloseIfSupported(NewMemoryStore()))
}
