package readers

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/DiAbL0Tin/aggregator-nicknames/internal/core/ports/driven"
)

// Ensure TextReader implements the interface.
var _ driven.RecordReader = (*TextReader)(nil)

// TextReader handles line-oriented files: one record per line.
// Markdown and extensionless files are treated the same way.
type TextReader struct{}

// NewTextReader creates a new line-oriented reader.
func NewTextReader() *TextReader {
	return &TextReader{}
}

// Extensions returns the file extensions this reader handles.
func (r *TextReader) Extensions() []string {
	return []string{".txt", ".md", ""}
}

// Read extracts one record per line, skipping blank lines.
func (r *TextReader) Read(ctx context.Context, path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var records []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			records = append(records, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", path, err)
	}
	return records, nil
}
