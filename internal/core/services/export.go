package services

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

// ExportText writes values as a newline-delimited text file at path,
// creating parent directories as needed. A write failure is fatal to
// the run; the partial file is left in place for inspection.
func ExportText(path string, values []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, value := range values {
		if _, err := w.WriteString(value); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return f.Close()
}
