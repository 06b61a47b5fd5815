// Package cli implements the cobra command tree driving the
// aggregation pipeline.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DiAbL0Tin/aggregator-nicknames/internal/adapters/driven/config/file"
	"github.com/DiAbL0Tin/aggregator-nicknames/internal/adapters/driven/storage/sqlite"
	"github.com/DiAbL0Tin/aggregator-nicknames/internal/connectors/filesystem"
	"github.com/DiAbL0Tin/aggregator-nicknames/internal/core/domain"
	"github.com/DiAbL0Tin/aggregator-nicknames/internal/logger"
)

var version = "dev"

var (
	flagManifest string
	flagDataDir  string
	flagVerbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "aggregator",
	Short: "Aggregate and deduplicate name datasets",
	Long: `aggregator merges name and username datasets from configured
sources into a single deduplicated list. Sources are declared in a
YAML manifest; their declaration order is their priority, and on
duplicates the value from the highest-priority source wins.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(flagVerbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagManifest, "manifest", "sources.yaml", "path to the source manifest")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default ~/.aggregator/data)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute(v string) error {
	if v != "" {
		version = v
	}
	return rootCmd.Execute()
}

// loadManifest reads the source manifest named by the --manifest flag.
func loadManifest() (*file.Manifest, error) {
	m, err := file.NewManifest(flagManifest)
	if err != nil {
		return nil, fmt.Errorf("loading manifest: %w", err)
	}
	return m, nil
}

// openStore opens the SQLite store under the --data-dir flag.
func openStore() (*sqlite.Store, error) {
	store, err := sqlite.NewStore(flagDataDir)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	return store, nil
}

// newConnector builds the filesystem connector from manifest defaults.
func newConnector(defaults domain.ManifestDefaults) *filesystem.Connector {
	cacheDir := defaults.CacheDir
	if cacheDir == "" {
		cacheDir = "cache"
	}
	var opts []filesystem.Option
	if len(defaults.DataFileExts) > 0 {
		opts = append(opts, filesystem.WithExtensions(defaults.DataFileExts))
	}
	return filesystem.New(cacheDir, opts...)
}
