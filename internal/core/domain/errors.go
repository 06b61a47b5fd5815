package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNoValidData indicates that no configured source yielded any
	// usable records. A dedup run with nothing to emit is a fatal
	// configuration/input failure, not an empty success.
	ErrNoValidData = errors.New("no valid data")

	// ErrUnsupportedFormat indicates a data file whose format no
	// registered reader can handle.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrInvalidManifest indicates a malformed source manifest.
	ErrInvalidManifest = errors.New("invalid manifest")

	// ErrRunInProgress indicates a pipeline run is already running.
	ErrRunInProgress = errors.New("run in progress")
)
