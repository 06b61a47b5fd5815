package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DiAbL0Tin/aggregator-nicknames/internal/core/domain"
	"github.com/DiAbL0Tin/aggregator-nicknames/internal/core/ports/driven"
	"github.com/DiAbL0Tin/aggregator-nicknames/internal/core/ports/driving"
	"github.com/DiAbL0Tin/aggregator-nicknames/internal/logger"
)

// Ensure FrameDeduper implements the interface.
var _ driving.Deduper = (*FrameDeduper)(nil)

// FrameDeduper loads every source dataset fully into memory,
// concatenates them in priority order and keeps the first occurrence
// of each value. Fast and simple, at the cost of holding all scanned
// values at once. For inputs too large for that, use StreamingDeduper;
// both produce identical output.
type FrameDeduper struct {
	datasets driven.DatasetStore
	progress driven.ProgressReporter
}

// NewFrameDeduper creates a new frame deduper.
func NewFrameDeduper(datasets driven.DatasetStore, progress driven.ProgressReporter) *FrameDeduper {
	if progress == nil {
		progress = NopProgressReporter{}
	}
	return &FrameDeduper{datasets: datasets, progress: progress}
}

// Dedupe processes sources strictly in slice order.
func (d *FrameDeduper) Dedupe(ctx context.Context, sources []domain.Source) (*driving.DedupeResult, error) {
	start := time.Now()
	result := &driving.DedupeResult{}

	seen := make(map[string]struct{})
	for _, source := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		dataset, err := d.datasets.Open(ctx, source.Slug)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue // No dataset, nothing to merge
			}
			logger.Warn("Skipping source %s: %v", source.Slug, err)
			result.Sources = append(result.Sources, domain.SourceResult{
				Slug: source.Slug,
				Path: domain.ScanPathSkipped,
				Err:  err,
			})
			continue
		}

		values, err := dataset.Load(ctx)
		if err != nil {
			logger.Warn("Skipping source %s: %v", source.Slug, err)
			result.Sources = append(result.Sources, domain.SourceResult{
				Slug: source.Slug,
				Path: domain.ScanPathSkipped,
				Err:  fmt.Errorf("loading %s: %w", source.Slug, err),
			})
			continue
		}

		added := 0
		for _, value := range values {
			if _, dup := seen[value]; dup {
				continue
			}
			seen[value] = struct{}{}
			result.Values = append(result.Values, value)
			added++
		}
		result.Stats.Scanned += len(values)
		result.Sources = append(result.Sources, domain.SourceResult{
			Slug:    source.Slug,
			Path:    domain.ScanPathLoad,
			Scanned: len(values),
			Added:   added,
		})
		d.progress.Progress(domain.StageDedupe, result.Stats.Scanned, len(result.Values))
	}

	if len(result.Values) == 0 {
		return nil, domain.ErrNoValidData
	}

	for _, sr := range result.Sources {
		if sr.Path == domain.ScanPathSkipped {
			result.Stats.SourcesSkipped++
		} else {
			result.Stats.SourcesProcessed++
		}
	}
	result.Stats.Unique = len(result.Values)
	result.Stats.Elapsed = time.Since(start)
	d.progress.Done(domain.StageDedupe, result.Stats.Scanned, result.Stats.Unique)
	return result, nil
}
