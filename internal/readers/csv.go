package readers

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/DiAbL0Tin/aggregator-nicknames/internal/core/ports/driven"
)

// Ensure CSVReader implements the interface.
var _ driven.RecordReader = (*CSVReader)(nil)

// nameColumns are the header names recognised as the record column, in
// preference order. When none matches, the first column is used.
var nameColumns = []string{
	"nick", "nickname", "username", "user", "name", "pseudo", "handle",
	"forename", "firstname", "first_name", "surname", "lastname",
	"last_name", "fullname", "full_name", "display_name", "displayname",
}

// CSVReader handles comma- and tab-separated files. Malformed rows are
// skipped rather than failing the whole file: third-party dumps are
// frequently ragged.
type CSVReader struct{}

// NewCSVReader creates a new CSV/TSV reader.
func NewCSVReader() *CSVReader {
	return &CSVReader{}
}

// Extensions returns the file extensions this reader handles.
func (r *CSVReader) Extensions() []string {
	return []string{".csv", ".tsv"}
}

// Read extracts the name column from the file, identified by header.
func (r *CSVReader) Read(ctx context.Context, path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		cr.Comma = '\t'
	}
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read header %s: %w", path, err)
	}
	column := identifyNameColumn(header)

	var records []string
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Skip malformed rows, keep the rest of the file
			continue
		}
		if column >= len(row) {
			continue
		}
		value := strings.TrimSpace(row[column])
		if value != "" {
			records = append(records, value)
		}
	}
	return records, nil
}

// identifyNameColumn returns the index of the first header matching a
// known name column, or 0 when none matches.
func identifyNameColumn(header []string) int {
	for _, candidate := range nameColumns {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), candidate) {
				return i
			}
		}
	}
	return 0
}
