package driven

// SourceLocator resolves configured sources to local data directories
// and answers cache-validity questions about them.
type SourceLocator interface {
	// Resolve returns the raw data directory for a source slug.
	Resolve(slug string) string

	// HasValidData reports whether dir contains at least one recognised
	// data file.
	HasValidData(dir string) bool

	// DataFiles returns all recognised data files below dir, sorted by
	// path.
	DataFiles(dir string) ([]string, error)
}
