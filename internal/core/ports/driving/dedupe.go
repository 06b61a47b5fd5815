package driving

import (
	"context"

	"github.com/DiAbL0Tin/aggregator-nicknames/internal/core/domain"
)

// Deduper merges the normalised datasets of priority-ordered sources
// into a single ordered, duplicate-free sequence. The frame and
// streaming implementations are interchangeable: for the same input
// they must produce the same values in the same first-seen order,
// differing only in memory and time tradeoffs.
type Deduper interface {
	// Dedupe processes sources strictly in slice order (priority
	// order). A source without a dataset is skipped silently; a source
	// that fails to read is logged and skipped. If no source yields
	// any data, Dedupe fails with domain.ErrNoValidData.
	Dedupe(ctx context.Context, sources []domain.Source) (*DedupeResult, error)
}

// DedupeResult is the outcome of a dedup run.
type DedupeResult struct {
	// Values is the deduplicated output in first-seen order with
	// respect to the priority-ordered concatenation of the inputs.
	Values []string

	// Stats are the run counters.
	Stats domain.DedupeStats

	// Sources records the per-source outcomes in processing order.
	Sources []domain.SourceResult
}
