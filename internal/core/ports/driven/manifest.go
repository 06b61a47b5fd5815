package driven

import "github.com/DiAbL0Tin/aggregator-nicknames/internal/core/domain"

// ManifestStore provides access to the declared source manifest.
// The manifest's declaration order defines source priority.
type ManifestStore interface {
	// Sources returns the configured sources in manifest order, with
	// Priority set from position.
	Sources() []domain.Source

	// Defaults returns the run-wide settings declared in the manifest.
	Defaults() domain.ManifestDefaults

	// Path returns the manifest file path.
	Path() string
}
