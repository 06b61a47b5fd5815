package chunks

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/DiAbL0Tin/aggregator-nicknames/internal/logger"
)

// DefaultMaxLines is the default number of lines per chunk file.
const DefaultMaxLines = 5_000_000

// chunkPattern yields names that sort lexicographically in creation
// order (chunk_0001.txt, chunk_0002.txt, ...).
const chunkPattern = "chunk_%04d.txt"

// chunkGlob matches the files produced by this package.
const chunkGlob = "chunk_*.txt"

// Writer splits an ordered value sequence into sequential chunk files.
// It never reorders or deduplicates; chunking is purely a size
// operation.
type Writer struct {
	maxLines int
}

// WriterOption configures the writer.
type WriterOption func(*Writer)

// WithMaxLines sets the maximum number of lines per chunk.
func WithMaxLines(n int) WriterOption {
	return func(w *Writer) {
		if n > 0 {
			w.maxLines = n
		}
	}
}

// NewWriter creates a chunk writer with the given options.
func NewWriter(opts ...WriterOption) *Writer {
	w := &Writer{maxLines: DefaultMaxLines}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write materialises values as chunk files under outputDir, in arrival
// order, at most maxLines per file. An exactly-divisible total
// produces no empty trailing chunk. I/O errors are fatal; partial
// chunk files are left in place.
func (w *Writer) Write(values []string, outputDir string) ([]string, error) {
	if err := os.MkdirAll(outputDir, 0700); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var (
		paths   []string
		out     *bufio.Writer
		file    *os.File
		inChunk int
	)

	closeCurrent := func() error {
		if file == nil {
			return nil
		}
		if err := out.Flush(); err != nil {
			file.Close()
			return fmt.Errorf("flush chunk: %w", err)
		}
		if err := file.Close(); err != nil {
			return fmt.Errorf("close chunk: %w", err)
		}
		file = nil
		return nil
	}

	for _, value := range values {
		if file == nil {
			path := filepath.Join(outputDir, fmt.Sprintf(chunkPattern, len(paths)+1))
			f, err := os.Create(path)
			if err != nil {
				return nil, fmt.Errorf("create chunk %s: %w", path, err)
			}
			file = f
			out = bufio.NewWriter(f)
			paths = append(paths, path)
			inChunk = 0
		}

		if _, err := out.WriteString(value + "\n"); err != nil {
			file.Close()
			return nil, fmt.Errorf("write chunk: %w", err)
		}
		inChunk++

		if inChunk >= w.maxLines {
			if err := closeCurrent(); err != nil {
				return nil, err
			}
		}
	}

	if err := closeCurrent(); err != nil {
		return nil, err
	}

	logger.Info("Wrote %d values across %d chunks", len(values), len(paths))
	return paths, nil
}

// List returns the chunk files in dir sorted by index.
func List(dir string) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, chunkGlob))
	if err != nil {
		return nil, fmt.Errorf("glob chunks: %w", err)
	}
	sort.Strings(paths)
	return paths, nil
}
