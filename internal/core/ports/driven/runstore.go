package driven

import (
	"context"

	"github.com/DiAbL0Tin/aggregator-nicknames/internal/core/domain"
)

// RunStateStore persists pipeline run state: which sources completed,
// per-stage timings and final counters. It backs resumability and the
// external statistics display.
type RunStateStore interface {
	// StartRun records the beginning of a run.
	StartRun(ctx context.Context, run domain.RunState) error

	// FinishRun records the completion of a run with final stats.
	FinishRun(ctx context.Context, id string, stats domain.DedupeStats) error

	// RecordStage records the elapsed time of one pipeline stage.
	RecordStage(ctx context.Context, runID string, timing domain.StageTiming) error

	// RecordSource records the outcome of processing one source.
	RecordSource(ctx context.Context, runID string, result domain.SourceResult) error

	// Get returns a run by ID. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, id string) (*domain.RunState, error)

	// SourceResults returns the recorded per-source outcomes of a run
	// in recording order.
	SourceResults(ctx context.Context, runID string) ([]domain.SourceResult, error)
}
