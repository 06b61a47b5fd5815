package readers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/DiAbL0Tin/aggregator-nicknames/internal/core/ports/driven"
)

// Ensure JSONReader implements the interface.
var _ driven.RecordReader = (*JSONReader)(nil)

// JSONReader handles JSON files containing either an array of strings
// or an array of objects. For objects, the record field is identified
// the same way as CSV headers.
type JSONReader struct{}

// NewJSONReader creates a new JSON reader.
func NewJSONReader() *JSONReader {
	return &JSONReader{}
}

// Extensions returns the file extensions this reader handles.
func (r *JSONReader) Extensions() []string {
	return []string{".json"}
}

// Read extracts records from the JSON document.
func (r *JSONReader) Read(ctx context.Context, path string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	var records []string
	field := ""
	for _, entry := range entries {
		var s string
		if err := json.Unmarshal(entry, &s); err == nil {
			if s = strings.TrimSpace(s); s != "" {
				records = append(records, s)
			}
			continue
		}

		var obj map[string]any
		if err := json.Unmarshal(entry, &obj); err != nil {
			// Skip entries that are neither strings nor objects
			continue
		}
		if field == "" {
			field = identifyNameField(obj)
		}
		if value, ok := obj[field].(string); ok {
			if value = strings.TrimSpace(value); value != "" {
				records = append(records, value)
			}
		}
	}
	return records, nil
}

// identifyNameField returns the first known name key present in the
// object, falling back to the lexicographically smallest key so the
// choice stays deterministic.
func identifyNameField(obj map[string]any) string {
	for _, candidate := range nameColumns {
		if _, ok := obj[candidate]; ok {
			return candidate
		}
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > 0 {
		return keys[0]
	}
	return ""
}
