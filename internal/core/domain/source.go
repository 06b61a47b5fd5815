package domain

// Source represents a configured data source.
// Sources are declared in the manifest; their declaration order defines
// priority. On duplicate values across sources, the value emitted is the
// one from the highest-priority (lowest Priority index) source.
type Source struct {
	// Slug is the unique identifier for the source.
	Slug string

	// Kind identifies how the raw data is acquired (e.g., "git",
	// "kaggle", "http", "local"). Acquisition itself happens outside
	// the aggregation core; the kind is carried for display only.
	Kind string

	// Ref is the citation reference for the source.
	Ref string

	// Priority is the source's rank: its index in the manifest order.
	// Lower index = higher priority. Stable for a whole pipeline run.
	Priority int

	// Path is the resolved filesystem location of the source's raw
	// data. Empty until resolved against the cache directory.
	Path string

	// IsEmail marks sources whose records are email addresses rather
	// than bare names.
	IsEmail bool
}

// ScanPath identifies which code path produced a source's values
// during a streaming dedup run.
type ScanPath string

const (
	// ScanPathBatch means the source was consumed through the batch
	// scanner.
	ScanPathBatch ScanPath = "batch"

	// ScanPathFallback means batch scanning failed and the source was
	// loaded in full instead.
	ScanPathFallback ScanPath = "fallback"

	// ScanPathLoad means the source was loaded in full by the frame
	// engine, which never batch-scans.
	ScanPathLoad ScanPath = "load"

	// ScanPathSkipped means both paths failed and the source
	// contributed nothing.
	ScanPathSkipped ScanPath = "skipped"
)

// SourceResult records the outcome of processing one source during a
// dedup run. It replaces exception-driven branching: the engine tries
// the batch scanner, then the full-load fallback, and records which
// path was taken.
type SourceResult struct {
	// Slug identifies the source.
	Slug string

	// Path is the code path that produced the values.
	Path ScanPath

	// Scanned is the number of records read from the source.
	Scanned int

	// Added is the number of previously unseen values the source
	// contributed to the output.
	Added int

	// Err is the failure that forced a fallback or skip, nil on the
	// clean path.
	Err error
}
