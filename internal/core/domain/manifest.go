package domain

// ManifestDefaults are the run-wide settings declared in the source
// manifest. Zero values mean "use the built-in default".
type ManifestDefaults struct {
	// CacheDir is the directory holding per-source raw data.
	CacheDir string

	// OutputPath is where the final text artifact is written.
	OutputPath string

	// Workers bounds concurrent source normalisation.
	Workers int

	// Force disables dataset caching for the run.
	Force bool

	// DataFileExts overrides the recognised data file extensions.
	DataFileExts []string
}
