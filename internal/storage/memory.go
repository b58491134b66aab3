package storage

import (
	"context"
	"sort"
	"sync"

	"evoroot/internal/model"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	runs        map[string]model.RunRecord
	series      map[string]model.SeriesRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.runs = make(map[string]model.RunRecord)
	s.series = make(map[string]model.SeriesRecord)
	return nil
}

func (s *MemoryStore) Reset(ctx context.Context) error {
	return s.Init(ctx)
}

func (s *MemoryStore) SaveRun(_ context.Context, record model.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs[record.RunID] = record
	return nil
}

func (s *MemoryStore) GetRun(_ context.Context, runID string) (model.RunRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.runs[runID]
	return record, ok, nil
}

func (s *MemoryStore) ListRuns(_ context.Context) ([]model.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]model.RunRecord, 0, len(s.runs))
	for _, record := range s.runs {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].CreatedAtUTC == records[j].CreatedAtUTC {
			return records[i].RunID < records[j].RunID
		}
		return records[i].CreatedAtUTC < records[j].CreatedAtUTC
	})
	return records, nil
}

func (s *MemoryStore) SaveSeries(_ context.Context, series model.SeriesRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.series[series.RunID] = series
	return nil
}

func (s *MemoryStore) GetSeries(_ context.Context, runID string) (model.SeriesRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	series, ok := s.series[runID]
	return series, ok, nil
}
