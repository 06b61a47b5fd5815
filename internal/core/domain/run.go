package domain

import "time"

// Pipeline stages, in execution order.
const (
	StageNormalise = "normalise"
	StageDedupe    = "dedupe"
	StageExport    = "export"
)

// DedupeStats holds the counters a dedup run reports to observers.
type DedupeStats struct {
	// SourcesProcessed is the number of sources that contributed data.
	SourcesProcessed int

	// SourcesSkipped is the number of sources skipped after failures.
	SourcesSkipped int

	// Scanned is the total number of raw records seen.
	Scanned int

	// Unique is the number of unique values emitted.
	Unique int

	// Elapsed is the wall time of the dedup stage.
	Elapsed time.Duration
}

// RunState tracks one pipeline invocation for resumability and for the
// statistics display layer.
type RunState struct {
	// ID is the unique run identifier.
	ID string

	// Strategy is the dedup strategy used ("frame" or "streaming").
	Strategy string

	// StartedAt is when the run began.
	StartedAt time.Time

	// FinishedAt is when the run completed; zero while running.
	FinishedAt time.Time

	// Stats are the final counters; zero while running.
	Stats DedupeStats
}

// StageTiming records the elapsed wall time of one pipeline stage.
type StageTiming struct {
	Stage   string
	Elapsed time.Duration
}
