package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DiAbL0Tin/aggregator-nicknames/internal/core/ports/driving"
	"github.com/DiAbL0Tin/aggregator-nicknames/internal/core/services"
	"github.com/DiAbL0Tin/aggregator-nicknames/internal/normalisers/name"
	"github.com/DiAbL0Tin/aggregator-nicknames/internal/readers"
)

var (
	flagHighVolume bool
	flagForce      bool
	flagOutput     string
	flagWorkers    int
	flagBatchSize  int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full aggregation pipeline",
	Long: `Normalises every source declared in the manifest, merges them in
priority order keeping the first occurrence of each value, and writes
the result as a newline-delimited text file.

With --high-volume the merge streams source datasets batch by batch
instead of loading everything into memory. Both modes produce
identical output.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&flagHighVolume, "high-volume", false, "use the memory-bounded streaming merge")
	runCmd.Flags().BoolVar(&flagForce, "force", false, "reprocess sources even when a cached dataset exists")
	runCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output file path (overrides manifest default)")
	runCmd.Flags().IntVar(&flagWorkers, "workers", 0, "concurrent source normalisation limit (overrides manifest default)")
	runCmd.Flags().IntVar(&flagBatchSize, "batch-size", 0, "streaming scan batch size")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
	manifest, err := loadManifest()
	if err != nil {
		return err
	}
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	defaults := manifest.Defaults()
	datasets := store.DatasetStore()
	progress := services.NewLogProgressReporter()

	workers := defaults.Workers
	if flagWorkers > 0 {
		workers = flagWorkers
	}
	normaliseSvc := services.NewNormaliseService(
		newConnector(defaults),
		readers.NewRegistry(),
		name.New(),
		datasets,
		services.WithWorkers(workers),
		services.WithForce(flagForce || defaults.Force),
	)

	var deduper driving.Deduper
	strategy := "frame"
	if flagHighVolume {
		strategy = "streaming"
		var opts []services.StreamingOption
		if flagBatchSize > 0 {
			opts = append(opts, services.WithBatchSize(flagBatchSize))
		}
		deduper = services.NewStreamingDeduper(datasets, progress, opts...)
	} else {
		deduper = services.NewFrameDeduper(datasets, progress)
	}

	output := defaults.OutputPath
	if flagOutput != "" {
		output = flagOutput
	}
	if output == "" {
		// Fall back to the persistent settings, then the built-in name.
		if settings, err := openSettings(); err == nil {
			output = settings.GetString("output.path")
		}
	}
	if output == "" {
		output = "nicknames.txt"
	}

	pipeline := services.NewPipelineService(
		manifest.Sources(),
		normaliseSvc,
		deduper,
		strategy,
		datasets,
		store.RunStateStore(),
		output,
	)

	summary, err := pipeline.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	cmd.Printf("Run %s complete.\n", summary.RunID)
	cmd.Printf("  Sources: %d processed\n", summary.SourcesProcessed)
	cmd.Printf("  Records: %d scanned, %d unique\n", summary.Scanned, summary.Unique)
	cmd.Printf("  Output:  %s\n", summary.OutputPath)
	return nil
}
