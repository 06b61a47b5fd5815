package file

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/DiAbL0Tin/aggregator-nicknames/internal/core/domain"
	"github.com/DiAbL0Tin/aggregator-nicknames/internal/core/ports/driven"
)

// Ensure Manifest implements the interface.
var _ driven.ManifestStore = (*Manifest)(nil)

// Manifest is a YAML-based implementation of driven.ManifestStore.
// The file declares the sources to aggregate; their order in the file
// is their priority, highest first.
type Manifest struct {
	filePath string
	defaults domain.ManifestDefaults
	sources  []domain.Source
}

// manifestFile is the YAML shape of the manifest.
type manifestFile struct {
	Defaults struct {
		CacheDir     string   `yaml:"cache_dir"`
		Output       string   `yaml:"output"`
		Workers      int      `yaml:"workers"`
		Force        bool     `yaml:"force"`
		DataFileExts []string `yaml:"data_file_exts"`
	} `yaml:"defaults"`
	Sources []struct {
		Slug  string `yaml:"slug"`
		Kind  string `yaml:"kind"`
		Ref   string `yaml:"ref"`
		Email bool   `yaml:"email"`
	} `yaml:"sources"`
}

// NewManifest loads and validates the manifest at path.
func NewManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var parsed manifestFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidManifest, err)
	}
	if len(parsed.Sources) == 0 {
		return nil, fmt.Errorf("%w: no sources declared", domain.ErrInvalidManifest)
	}

	seen := make(map[string]struct{}, len(parsed.Sources))
	sources := make([]domain.Source, 0, len(parsed.Sources))
	for i, src := range parsed.Sources {
		if src.Slug == "" {
			return nil, fmt.Errorf("%w: source %d has no slug", domain.ErrInvalidManifest, i)
		}
		if _, dup := seen[src.Slug]; dup {
			return nil, fmt.Errorf("%w: duplicate slug %q", domain.ErrInvalidManifest, src.Slug)
		}
		seen[src.Slug] = struct{}{}
		sources = append(sources, domain.Source{
			Slug:     src.Slug,
			Kind:     src.Kind,
			Ref:      src.Ref,
			Priority: i,
			IsEmail:  src.Email,
		})
	}

	return &Manifest{
		filePath: path,
		defaults: domain.ManifestDefaults{
			CacheDir:     parsed.Defaults.CacheDir,
			OutputPath:   parsed.Defaults.Output,
			Workers:      parsed.Defaults.Workers,
			Force:        parsed.Defaults.Force,
			DataFileExts: parsed.Defaults.DataFileExts,
		},
		sources: sources,
	}, nil
}

// Sources returns the configured sources in manifest order.
func (m *Manifest) Sources() []domain.Source {
	out := make([]domain.Source, len(m.sources))
	copy(out, m.sources)
	return out
}

// Defaults returns the run-wide settings declared in the manifest.
func (m *Manifest) Defaults() domain.ManifestDefaults {
	return m.defaults
}

// Path returns the manifest file path.
func (m *Manifest) Path() string {
	return m.filePath
}
