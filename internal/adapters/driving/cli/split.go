package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DiAbL0Tin/aggregator-nicknames/internal/chunks"
)

var flagMaxLines int

var splitCmd = &cobra.Command{
	Use:   "split <input-dir> <output-dir>",
	Short: "Split data files into fixed-size chunk files",
	Long: `Reads every data file below the input directory in sorted order and
rewrites the lines as sequential chunk files of at most --max-lines
lines each. Arrival order is preserved and nothing is deduplicated.`,
	Args: cobra.ExactArgs(2),
	RunE: runSplit,
}

func init() {
	splitCmd.Flags().IntVar(&flagMaxLines, "max-lines", chunks.DefaultMaxLines, "maximum lines per chunk file")
	rootCmd.AddCommand(splitCmd)
}

func runSplit(cmd *cobra.Command, args []string) error {
	paths, err := chunks.SplitFiles(cmd.Context(), args[0], args[1], flagMaxLines)
	if err != nil {
		return fmt.Errorf("split: %w", err)
	}
	cmd.Printf("Wrote %d chunk files to %s\n", len(paths), args[1])
	return nil
}
