package memory

import (
	"context"
	"sync"
	"time"

	"github.com/DiAbL0Tin/aggregator-nicknames/internal/core/domain"
	"github.com/DiAbL0Tin/aggregator-nicknames/internal/core/ports/driven"
)

// Ensure RunStateStore implements the interface.
var _ driven.RunStateStore = (*RunStateStore)(nil)

// RunStateStore is an in-memory implementation of driven.RunStateStore.
type RunStateStore struct {
	mu      sync.RWMutex
	runs    map[string]domain.RunState
	stages  map[string][]domain.StageTiming
	sources map[string][]domain.SourceResult
}

// NewRunStateStore creates a new in-memory run-state store.
func NewRunStateStore() *RunStateStore {
	return &RunStateStore{
		runs:    make(map[string]domain.RunState),
		stages:  make(map[string][]domain.StageTiming),
		sources: make(map[string][]domain.SourceResult),
	}
}

// StartRun records the beginning of a run.
func (s *RunStateStore) StartRun(_ context.Context, run domain.RunState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = run
	return nil
}

// FinishRun records the completion of a run.
func (s *RunStateStore) FinishRun(_ context.Context, id string, stats domain.DedupeStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	run, ok := s.runs[id]
	if !ok {
		return domain.ErrNotFound
	}
	run.Stats = stats
	run.FinishedAt = time.Now()
	s.runs[id] = run
	return nil
}

// RecordStage records the elapsed time of one pipeline stage.
func (s *RunStateStore) RecordStage(_ context.Context, runID string, timing domain.StageTiming) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stages[runID] = append(s.stages[runID], timing)
	return nil
}

// RecordSource records the outcome of processing one source.
func (s *RunStateStore) RecordSource(_ context.Context, runID string, result domain.SourceResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sources[runID] = append(s.sources[runID], result)
	return nil
}

// Get returns a run by ID.
func (s *RunStateStore) Get(_ context.Context, id string) (*domain.RunState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &run, nil
}

// SourceResults returns per-source outcomes in recording order.
func (s *RunStateStore) SourceResults(_ context.Context, runID string) ([]domain.SourceResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	results := make([]domain.SourceResult, len(s.sources[runID]))
	copy(results, s.sources[runID])
	return results, nil
}
