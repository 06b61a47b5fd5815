package readers

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/DiAbL0Tin/aggregator-nicknames/internal/core/domain"
	"github.com/DiAbL0Tin/aggregator-nicknames/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ReaderRegistry = (*Registry)(nil)

// Registry dispatches data files to the reader registered for their
// extension.
type Registry struct {
	byExtension map[string]driven.RecordReader
}

// NewRegistry creates a registry with all built-in readers registered.
func NewRegistry() *Registry {
	r := &Registry{byExtension: make(map[string]driven.RecordReader)}
	r.Register(NewTextReader())
	r.Register(NewCSVReader())
	r.Register(NewJSONReader())
	return r
}

// Register adds a reader to the registry. Later registrations win on
// extension conflicts.
func (r *Registry) Register(reader driven.RecordReader) {
	for _, ext := range reader.Extensions() {
		r.byExtension[strings.ToLower(ext)] = reader
	}
}

// Read dispatches to the reader registered for the file's extension.
func (r *Registry) Read(ctx context.Context, path string) ([]string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	reader, ok := r.byExtension[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, ext)
	}
	return reader.Read(ctx, path)
}
