package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DiAbL0Tin/aggregator-nicknames/internal/core/ports/driving"
	"github.com/DiAbL0Tin/aggregator-nicknames/internal/core/services"
)

var dedupeCmd = &cobra.Command{
	Use:   "dedupe",
	Short: "Merge already-normalised datasets without re-reading sources",
	Long: `Merges the datasets produced by an earlier run in manifest priority
order and writes the deduplicated result. Sources without a stored
dataset are skipped; use "aggregator run" to (re)build datasets.`,
	RunE: runDedupe,
}

func init() {
	dedupeCmd.Flags().BoolVar(&flagHighVolume, "high-volume", false, "use the memory-bounded streaming merge")
	dedupeCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output file path (overrides manifest default)")
	rootCmd.AddCommand(dedupeCmd)
}

func runDedupe(cmd *cobra.Command, _ []string) error {
	manifest, err := loadManifest()
	if err != nil {
		return err
	}
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	datasets := store.DatasetStore()
	progress := services.NewLogProgressReporter()

	var deduper driving.Deduper
	if flagHighVolume {
		deduper = services.NewStreamingDeduper(datasets, progress)
	} else {
		deduper = services.NewFrameDeduper(datasets, progress)
	}

	result, err := deduper.Dedupe(cmd.Context(), manifest.Sources())
	if err != nil {
		return fmt.Errorf("dedupe: %w", err)
	}

	output := flagOutput
	if output == "" {
		output = manifest.Defaults().OutputPath
	}
	if output == "" {
		output = "nicknames.txt"
	}
	if err := services.ExportText(output, result.Values); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	cmd.Printf("Merged %d sources: %d scanned, %d unique.\n",
		result.Stats.SourcesProcessed, result.Stats.Scanned, result.Stats.Unique)
	cmd.Printf("Output: %s\n", output)
	return nil
}
