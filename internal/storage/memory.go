package storage

import (
	"context"
	"errors"
	"sort"
	"sync"

	"tourgene/internal/model"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	configs     map[string]model.RunConfig
	bestTours   map[string]model.BestTourRecord
	histories   map[string][]float64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.configs = make(map[string]model.RunConfig)
	s.bestTours = make(map[string]model.BestTourRecord)
	s.histories = make(map[string][]float64)
	return nil
}

func (s *MemoryStore) SaveRunConfig(_ context.Context, cfg model.RunConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(); err != nil {
		return err
	}
	s.configs[cfg.RunID] = cfg
	return nil
}

func (s *MemoryStore) GetRunConfig(_ context.Context, runID string) (model.RunConfig, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.ready(); err != nil {
		return model.RunConfig{}, false, err
	}
	cfg, ok := s.configs[runID]
	return cfg, ok, nil
}

func (s *MemoryStore) SaveBestTour(_ context.Context, record model.BestTourRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(); err != nil {
		return err
	}
	s.bestTours[record.RunID] = record
	return nil
}

func (s *MemoryStore) GetBestTour(_ context.Context, runID string) (model.BestTourRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.ready(); err != nil {
		return model.BestTourRecord{}, false, err
	}
	record, ok := s.bestTours[runID]
	return record, ok, nil
}

func (s *MemoryStore) SaveHistory(_ context.Context, runID string, history []float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(); err != nil {
		return err
	}
	s.histories[runID] = append([]float64(nil), history...)
	return nil
}

func (s *MemoryStore) GetHistory(_ context.Context, runID string) ([]float64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.ready(); err != nil {
		return nil, false, err
	}
	history, ok := s.histories[runID]
	if !ok {
		return nil, false, nil
	}
	return append([]float64(nil), history...), true, nil
}

func (s *MemoryStore) ListRuns(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.ready(); err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(s.configs))
	for runID := range s.configs {
		seen[runID] = struct{}{}
	}
	for runID := range s.bestTours {
		seen[runID] = struct{}{}
	}
	for runID := range s.histories {
		seen[runID] = struct{}{}
	}
	runs := make([]string, 0, len(seen))
	for runID := range seen {
		runs = append(runs, runID)
	}
	sort.Strings(runs)
	return runs, nil
}

func (s *MemoryStore) ready() error {
	if !s.initialized {
		return errors.New("store is not initialized")
	}
	return nil
}
