package chunks

import (
	"bufio"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/DiAbL0Tin/aggregator-nicknames/internal/logger"
)

// splitExtensions are the raw file extensions eligible for splitting.
var splitExtensions = []string{".txt", ".csv", ".tsv"}

// SplitFiles streams every eligible raw file below inputDir into
// sequential chunk files under outputDir, at most maxLines lines each,
// preserving line order. Input files are visited in sorted path order
// so repeated runs produce identical chunks. Returns the chunk paths.
func SplitFiles(ctx context.Context, inputDir, outputDir string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		maxLines = DefaultMaxLines
	}
	if err := os.MkdirAll(outputDir, 0700); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var inputs []string
	err := filepath.WalkDir(inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		for _, valid := range splitExtensions {
			if ext == valid {
				inputs = append(inputs, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", inputDir, err)
	}
	sort.Strings(inputs)

	var (
		paths   []string
		file    *os.File
		out     *bufio.Writer
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

	for _, input := range inputs {
		if err := ctx.Err(); err != nil {
			closeCurrent()
			return nil, err
		}
		logger.Debug("Splitting %s", input)

		in, err := os.Open(input)
		if err != nil {
			closeCurrent()
			return nil, fmt.Errorf("open %s: %w", input, err)
		}

		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			if file == nil {
				path := filepath.Join(outputDir, fmt.Sprintf(chunkPattern, len(paths)+1))
				f, err := os.Create(path)
				if err != nil {
					in.Close()
					return nil, fmt.Errorf("create chunk %s: %w", path, err)
				}
				file = f
				out = bufio.NewWriter(f)
				paths = append(paths, path)
				inChunk = 0
			}

			if _, err := out.WriteString(scanner.Text() + "\n"); err != nil {
				in.Close()
				file.Close()
				return nil, fmt.Errorf("write chunk: %w", err)
			}
			inChunk++

			if inChunk >= maxLines {
				if err := closeCurrent(); err != nil {
					in.Close()
					return nil, err
				}
			}
		}
		if err := scanner.Err(); err != nil {
			in.Close()
			closeCurrent()
			return nil, fmt.Errorf("read %s: %w", input, err)
		}
		in.Close()
	}

	if err := closeCurrent(); err != nil {
		return nil, err
	}

	logger.Info("Split %d files into %d chunks", len(inputs), len(paths))
	return paths, nil
}
