// Package filesystem resolves configured sources to local directories
// and answers cache-validity questions about them. Raw data acquisition
// (download, extraction) happens outside the aggregation core; by the
// time this connector runs, a source is just a directory of data files.
package filesystem

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/DiAbL0Tin/aggregator-nicknames/internal/core/ports/driven"
	"github.com/DiAbL0Tin/aggregator-nicknames/internal/logger"
)

// Ensure Connector implements the locator port.
var _ driven.SourceLocator = (*Connector)(nil)

// DefaultDataExtensions are the file extensions recognised as data
// files when judging cache validity.
var DefaultDataExtensions = []string{".txt", ".csv", ".parquet", ".json", ".tsv"}

// Connector locates source data below a cache directory.
type Connector struct {
	cacheDir   string
	extensions []string
}

// Option configures the connector.
type Option func(*Connector)

// WithExtensions overrides the recognised data file extensions.
func WithExtensions(exts []string) Option {
	return func(c *Connector) {
		if len(exts) > 0 {
			c.extensions = exts
		}
	}
}

// New creates a connector rooted at cacheDir.
func New(cacheDir string, opts ...Option) *Connector {
	c := &Connector{
		cacheDir:   cacheDir,
		extensions: DefaultDataExtensions,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Resolve returns the raw data directory for a source slug.
func (c *Connector) Resolve(slug string) string {
	return filepath.Join(c.cacheDir, slug)
}

// HasValidData reports whether dir contains at least one recognised
// data file. An empty or metadata-only directory is an invalid cache
// and must trigger re-acquisition upstream.
func (c *Connector) HasValidData(dir string) bool {
	found := false
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Unreadable entries don't make a cache valid
		}
		if d.IsDir() {
			return nil
		}
		if c.isDataFile(d.Name()) {
			found = true
			return filepath.SkipAll
		}
		return nil
	})
	return found
}

// DataFiles returns all recognised data files below dir, sorted by
// path for a deterministic processing order.
func (c *Connector) DataFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && c.isDataFile(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}

// CleanCache removes cached directories whose name matches no valid
// slug, returning the number of directories removed.
func (c *Connector) CleanCache(validSlugs []string) (int, error) {
	valid := make(map[string]struct{}, len(validSlugs))
	for _, slug := range validSlugs {
		valid[slug] = struct{}{}
	}

	entries, err := os.ReadDir(c.cacheDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read cache dir: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, ok := valid[entry.Name()]; ok {
			continue
		}
		logger.Debug("Removing stale cache directory %s", entry.Name())
		if err := os.RemoveAll(filepath.Join(c.cacheDir, entry.Name())); err != nil {
			return removed, fmt.Errorf("remove %s: %w", entry.Name(), err)
		}
		removed++
	}
	return removed, nil
}

// isDataFile reports whether a file name has a recognised data
// extension. Dotfiles never count.
func (c *Connector) isDataFile(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, valid := range c.extensions {
		if ext == valid {
			return true
		}
	}
	return false
}
