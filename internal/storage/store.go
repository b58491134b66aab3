package storage

import (
	"context"

	"evoroot/internal/model"
)

// Store persists completed run summaries and their recorded series. Live
// populations are never stored; a run writes its results once after the loop
// terminates.
type Store interface {
	Init(ctx context.Context) error
	Reset(ctx context.Context) error
	SaveRun(ctx context.Context, record model.RunRecord) error
	GetRun(ctx context.Context, runID string) (model.RunRecord, bool, error)
	ListRuns(ctx context.Context) ([]model.RunRecord, error)
	SaveSeries(ctx context.Context, series model.SeriesRecord) error
	GetSeries(ctx context.Context, runID string) (model.SeriesRecord, bool, error)
}
