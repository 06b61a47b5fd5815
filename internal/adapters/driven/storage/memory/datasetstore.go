// Package memory provides in-memory implementations of the storage
// ports, used by tests and by small single-shot runs that do not need
// durable intermediate artifacts.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/DiAbL0Tin/aggregator-nicknames/internal/core/domain"
	"github.com/DiAbL0Tin/aggregator-nicknames/internal/core/ports/driven"
)

// Ensure DatasetStore implements the interface.
var _ driven.DatasetStore = (*DatasetStore)(nil)

// DatasetStore is an in-memory implementation of driven.DatasetStore.
type DatasetStore struct {
	mu       sync.RWMutex
	datasets map[string][]string
}

// NewDatasetStore creates a new in-memory dataset store.
func NewDatasetStore() *DatasetStore {
	return &DatasetStore{
		datasets: make(map[string][]string),
	}
}

// Save stores an ordered dataset for a slug, replacing any existing
// dataset.
func (s *DatasetStore) Save(_ context.Context, slug string, values []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := make([]string, len(values))
	copy(copied, values)
	s.datasets[slug] = copied
	return nil
}

// Open returns the dataset for a slug.
func (s *DatasetStore) Open(_ context.Context, slug string) (driven.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	values, ok := s.datasets[slug]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &dataset{values: values}, nil
}

// Exists reports whether a dataset for the slug is present.
func (s *DatasetStore) Exists(_ context.Context, slug string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.datasets[slug]
	return ok, nil
}

// List returns the slugs of all stored datasets, sorted.
func (s *DatasetStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	slugs := make([]string, 0, len(s.datasets))
	for slug := range s.datasets {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs, nil
}

// Delete removes the dataset for a slug.
func (s *DatasetStore) Delete(_ context.Context, slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.datasets, slug)
	return nil
}

// dataset is a read-only view over a stored value slice.
type dataset struct {
	values []string
}

var _ driven.Dataset = (*dataset)(nil)

// Scan delivers the values in batches of at most batchSize.
func (d *dataset) Scan(ctx context.Context, batchSize int, fn func(batch []string) error) error {
	if batchSize <= 0 {
		batchSize = len(d.values)
	}
	for start := 0; start < len(d.values); start += batchSize {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := start + batchSize
		if end > len(d.values) {
			end = len(d.values)
		}
		if err := fn(d.values[start:end]); err != nil {
			return err
		}
	}
	return nil
}

// Load returns a copy of the full dataset.
func (d *dataset) Load(_ context.Context) ([]string, error) {
	copied := make([]string, len(d.values))
	copy(copied, d.values)
	return copied, nil
}
