package services

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/DiAbL0Tin/aggregator-nicknames/internal/core/domain"
	"github.com/DiAbL0Tin/aggregator-nicknames/internal/core/ports/driven"
	"github.com/DiAbL0Tin/aggregator-nicknames/internal/logger"
)

// DefaultWorkers bounds concurrent source normalisation.
const DefaultWorkers = 32

// NormaliseResult records the outcome of normalising one source.
type NormaliseResult struct {
	// Slug identifies the source.
	Slug string

	// Records is the number of raw records read.
	Records int

	// Unique is the number of values persisted after within-source
	// deduplication.
	Unique int

	// Cached is true when an existing dataset was reused without
	// reprocessing.
	Cached bool

	// Err is the failure that made the source contribute nothing.
	Err error
}

// NormaliseService turns each source's raw data files into a
// normalised, within-source-deduplicated dataset. Sources are
// independent, so they are processed concurrently; ordering guarantees
// only matter later, at dedup time.
type NormaliseService struct {
	locator    driven.SourceLocator
	readers    driven.ReaderRegistry
	normaliser driven.ValueNormaliser
	datasets   driven.DatasetStore
	workers    int
	force      bool
}

// NormaliseOption configures the normalise service.
type NormaliseOption func(*NormaliseService)

// WithWorkers overrides the concurrent source limit.
func WithWorkers(n int) NormaliseOption {
	return func(s *NormaliseService) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithForce disables dataset caching: every source is reprocessed even
// when a dataset for it already exists.
func WithForce(force bool) NormaliseOption {
	return func(s *NormaliseService) {
		s.force = force
	}
}

// NewNormaliseService creates a new normalise service.
func NewNormaliseService(
	locator driven.SourceLocator,
	readers driven.ReaderRegistry,
	normaliser driven.ValueNormaliser,
	datasets driven.DatasetStore,
	opts ...NormaliseOption,
) *NormaliseService {
	s := &NormaliseService{
		locator:    locator,
		readers:    readers,
		normaliser: normaliser,
		datasets:   datasets,
		workers:    DefaultWorkers,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Normalise processes all sources and returns one result per source,
// in the input order. A source failure never fails the whole stage;
// the failed source is recorded and skipped.
func (s *NormaliseService) Normalise(ctx context.Context, sources []domain.Source) ([]NormaliseResult, error) {
	results := make([]NormaliseResult, len(sources))

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, source := range sources {
		i, source := i, source
		g.Go(func() error {
			result := s.normaliseSource(ctx, source)
			mu.Lock()
			results[i] = result
			mu.Unlock()
			return ctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// normaliseSource processes one source end to end.
func (s *NormaliseService) normaliseSource(ctx context.Context, source domain.Source) NormaliseResult {
	result := NormaliseResult{Slug: source.Slug}

	if !s.force {
		exists, err := s.datasets.Exists(ctx, source.Slug)
		if err == nil && exists {
			logger.Debug("Source %s already normalised, skipping", source.Slug)
			result.Cached = true
			return result
		}
	}

	dir := source.Path
	if dir == "" {
		dir = s.locator.Resolve(source.Slug)
	}
	if !s.locator.HasValidData(dir) {
		result.Err = fmt.Errorf("source %s: %w", source.Slug, domain.ErrNoValidData)
		logger.Warn("Source %s has no valid data files in %s", source.Slug, dir)
		return result
	}

	files, err := s.locator.DataFiles(dir)
	if err != nil {
		result.Err = fmt.Errorf("listing data files for %s: %w", source.Slug, err)
		logger.Warn("Source %s: %v", source.Slug, err)
		return result
	}

	seen := make(map[string]struct{})
	var values []string
	for _, file := range files {
		records, err := s.readers.Read(ctx, file)
		if err != nil {
			// A single bad file doesn't sink the source.
			logger.Warn("Source %s: skipping %s: %v", source.Slug, file, err)
			continue
		}
		result.Records += len(records)
		for _, raw := range records {
			value, ok := s.normaliser.Normalise(raw)
			if !ok {
				continue
			}
			if _, dup := seen[value]; dup {
				continue
			}
			seen[value] = struct{}{}
			values = append(values, value)
		}
	}

	if len(values) == 0 {
		result.Err = fmt.Errorf("source %s: %w", source.Slug, domain.ErrNoValidData)
		logger.Warn("Source %s yielded no values", source.Slug)
		return result
	}

	if err := s.datasets.Save(ctx, source.Slug, values); err != nil {
		result.Err = fmt.Errorf("saving dataset for %s: %w", source.Slug, err)
		logger.Warn("Source %s: %v", source.Slug, result.Err)
		return result
	}

	result.Unique = len(values)
	logger.Debug("Source %s: %d records, %d unique", source.Slug, result.Records, result.Unique)
	return result
}
