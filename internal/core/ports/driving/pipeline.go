package driving

import "context"

// Pipeline runs the full aggregation: normalise configured sources,
// deduplicate, export the final artifact.
type Pipeline interface {
	// Run executes all stages and returns a summary of the run.
	Run(ctx context.Context) (*RunSummary, error)
}

// RunSummary describes a completed pipeline run.
type RunSummary struct {
	// RunID is the identifier under which run state was recorded.
	RunID string

	// OutputPath is the newline-delimited text artifact.
	OutputPath string

	// Unique is the number of unique values exported.
	Unique int

	// Scanned is the total number of raw records seen during dedup.
	Scanned int

	// SourcesProcessed is the number of sources that contributed data.
	SourcesProcessed int
}
