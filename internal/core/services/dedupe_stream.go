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

// DefaultScanBatchSize is the batch size for high-volume streaming
// dedup runs.
const DefaultScanBatchSize = 10_000_000

// Ensure StreamingDeduper implements the interface.
var _ driving.Deduper = (*StreamingDeduper)(nil)

// StreamingDeduper merges sources one batch at a time, holding only
// the seen-set and the output in memory. Each source is consumed
// through the batch scanner; if scanning fails, the source is loaded
// in full instead, and if that also fails it is skipped. Re-running a
// source through the fallback after a partial scan is safe: values
// already emitted keep their earlier positions because the seen-set
// test is idempotent.
type StreamingDeduper struct {
	datasets  driven.DatasetStore
	progress  driven.ProgressReporter
	batchSize int
}

// StreamingOption configures the streaming deduper.
type StreamingOption func(*StreamingDeduper)

// WithBatchSize overrides the scan batch size.
func WithBatchSize(n int) StreamingOption {
	return func(d *StreamingDeduper) {
		if n > 0 {
			d.batchSize = n
		}
	}
}

// NewStreamingDeduper creates a new streaming deduper.
func NewStreamingDeduper(datasets driven.DatasetStore, progress driven.ProgressReporter, opts ...StreamingOption) *StreamingDeduper {
	if progress == nil {
		progress = NopProgressReporter{}
	}
	d := &StreamingDeduper{
		datasets:  datasets,
		progress:  progress,
		batchSize: DefaultScanBatchSize,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dedupe processes sources strictly in slice order.
func (d *StreamingDeduper) Dedupe(ctx context.Context, sources []domain.Source) (*driving.DedupeResult, error) {
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

		sr := d.consumeSource(ctx, source.Slug, dataset, seen, result)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result.Stats.Scanned += sr.Scanned
		result.Sources = append(result.Sources, sr)
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

// consumeSource runs one source through the batch scanner, falling
// back to a full load on scan failure. It mutates seen and
// result.Values and returns the source outcome.
func (d *StreamingDeduper) consumeSource(
	ctx context.Context,
	slug string,
	dataset driven.Dataset,
	seen map[string]struct{},
	result *driving.DedupeResult,
) domain.SourceResult {
	addedBefore := len(result.Values)

	scanned := 0
	scanErr := dataset.Scan(ctx, d.batchSize, func(batch []string) error {
		for _, value := range batch {
			scanned++
			if _, dup := seen[value]; dup {
				continue
			}
			seen[value] = struct{}{}
			result.Values = append(result.Values, value)
		}
		d.progress.Progress(domain.StageDedupe, result.Stats.Scanned+scanned, len(result.Values))
		return nil
	})
	if scanErr == nil {
		return domain.SourceResult{
			Slug:    slug,
			Path:    domain.ScanPathBatch,
			Scanned: scanned,
			Added:   len(result.Values) - addedBefore,
		}
	}
	if ctx.Err() != nil {
		return domain.SourceResult{Slug: slug, Path: domain.ScanPathSkipped, Err: ctx.Err()}
	}

	logger.Warn("Batch scan of %s failed, falling back to full load: %v", slug, scanErr)
	values, loadErr := dataset.Load(ctx)
	if loadErr != nil {
		logger.Warn("Skipping source %s: %v", slug, loadErr)
		return domain.SourceResult{
			Slug: slug,
			Path: domain.ScanPathSkipped,
			Err:  fmt.Errorf("scan failed (%v), load failed: %w", scanErr, loadErr),
		}
	}

	// Values emitted before the scan failed are simply dups now.
	for _, value := range values {
		if _, dup := seen[value]; dup {
			continue
		}
		seen[value] = struct{}{}
		result.Values = append(result.Values, value)
	}
	d.progress.Progress(domain.StageDedupe, result.Stats.Scanned+len(values), len(result.Values))
	return domain.SourceResult{
		Slug:    slug,
		Path:    domain.ScanPathFallback,
		Scanned: len(values),
		Added:   len(result.Values) - addedBefore,
		Err:     scanErr,
	}
}
