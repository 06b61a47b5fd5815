package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DiAbL0Tin/aggregator-nicknames/internal/chunks"
	"github.com/DiAbL0Tin/aggregator-nicknames/internal/core/services"
)

var dedupeChunksCmd = &cobra.Command{
	Use:   "dedupe-chunks <chunk-dir> <output-file>",
	Short: "Deduplicate chunk files into a single output file",
	Long: `Reads chunk files in index order, line by line, and writes the first
occurrence of each line to the output file. Chunk files are produced
by "aggregator split" and are trusted: an unreadable chunk aborts the
whole run.`,
	Args: cobra.ExactArgs(2),
	RunE: runDedupeChunks,
}

func init() {
	rootCmd.AddCommand(dedupeChunksCmd)
}

func runDedupeChunks(cmd *cobra.Command, args []string) error {
	deduper := chunks.NewSequentialDeduper(
		chunks.WithReporter(services.NewLogProgressReporter()),
	)
	unique, err := deduper.DedupeDir(cmd.Context(), args[0], args[1])
	if err != nil {
		return fmt.Errorf("dedupe-chunks: %w", err)
	}
	cmd.Printf("Wrote %d unique lines to %s\n", unique, args[1])
	return nil
}
