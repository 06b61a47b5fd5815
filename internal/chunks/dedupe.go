package chunks

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/DiAbL0Tin/aggregator-nicknames/internal/core/ports/driven"
	"github.com/DiAbL0Tin/aggregator-nicknames/internal/logger"
)

// SequentialDeduper deduplicates an on-disk sequence of chunk files
// against a running in-memory seen-set, streaming first occurrences to
// a single output file. Memory use is bounded by the number of unique
// values, not the total input size.
type SequentialDeduper struct {
	reporter driven.ProgressReporter
}

// DeduperOption configures the sequential deduper.
type DeduperOption func(*SequentialDeduper)

// WithReporter sets a progress reporter for long chunk sequences.
func WithReporter(r driven.ProgressReporter) DeduperOption {
	return func(d *SequentialDeduper) {
		d.reporter = r
	}
}

// NewSequentialDeduper creates a sequential chunk deduplicator.
func NewSequentialDeduper(opts ...DeduperOption) *SequentialDeduper {
	d := &SequentialDeduper{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DedupeDir deduplicates every chunk file in chunkDir, in index order,
// into outputPath. Returns the number of unique lines written.
func (d *SequentialDeduper) DedupeDir(ctx context.Context, chunkDir, outputPath string) (int, error) {
	files, err := List(chunkDir)
	if err != nil {
		return 0, err
	}
	return d.Dedupe(ctx, files, outputPath)
}

// Dedupe deduplicates the given chunk files, which must already be
// sorted by index. Output preserves cross-chunk and within-chunk order
// of first occurrence. Chunk files are a trusted internal artifact: a
// file that cannot be opened fails the whole run.
func (d *SequentialDeduper) Dedupe(ctx context.Context, chunkFiles []string, outputPath string) (int, error) {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0700); err != nil {
		return 0, fmt.Errorf("create output dir: %w", err)
	}
	outFile, err := os.Create(outputPath)
	if err != nil {
		return 0, fmt.Errorf("create output %s: %w", outputPath, err)
	}
	defer outFile.Close()
	out := bufio.NewWriter(outFile)

	seen := make(map[string]struct{})
	processed := 0

	for _, path := range chunkFiles {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		logger.Debug("Deduplicating %s", filepath.Base(path))

		in, err := os.Open(path)
		if err != nil {
			return 0, fmt.Errorf("open chunk %s: %w", path, err)
		}

		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := scanner.Text()
			processed++
			if _, dup := seen[line]; dup {
				continue
			}
			seen[line] = struct{}{}
			if _, err := out.WriteString(line + "\n"); err != nil {
				in.Close()
				return 0, fmt.Errorf("write output: %w", err)
			}
			if d.reporter != nil {
				d.reporter.Progress("dedupe-chunks", processed, len(seen))
			}
		}
		if err := scanner.Err(); err != nil {
			in.Close()
			return 0, fmt.Errorf("read chunk %s: %w", path, err)
		}
		in.Close()
	}

	if err := out.Flush(); err != nil {
		return 0, fmt.Errorf("flush output: %w", err)
	}
	if d.reporter != nil {
		d.reporter.Done("dedupe-chunks", processed, len(seen))
	}
	logger.Info("Chunk dedupe complete: %d lines in, %d unique", processed, len(seen))
	return len(seen), nil
}
