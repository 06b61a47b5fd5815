package driven

import "context"

// RecordReader extracts raw string records from a data file of a
// specific format. Records are returned in file order; no
// normalisation or deduplication happens here.
type RecordReader interface {
	// Extensions returns the file extensions this reader handles,
	// lower case with the leading dot (e.g. ".csv"). The empty string
	// matches files without an extension.
	Extensions() []string

	// Read extracts all records from the file at path.
	Read(ctx context.Context, path string) ([]string, error)
}

// ReaderRegistry selects the appropriate reader for a data file based
// on its extension.
type ReaderRegistry interface {
	// Read dispatches to the reader registered for the file's
	// extension. Returns domain.ErrUnsupportedFormat if none matches.
	Read(ctx context.Context, path string) ([]string, error)

	// Register adds a reader to the registry. Later registrations win
	// on extension conflicts.
	Register(reader RecordReader)
}

// ValueNormaliser maps a raw value to its canonical form.
type ValueNormaliser interface {
	// Normalise returns the canonical form of raw and true, or
	// ("", false) when nothing survives filtering and the record must
	// be discarded.
	Normalise(raw string) (string, bool)
}
