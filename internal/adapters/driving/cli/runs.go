package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var runsCmd = &cobra.Command{
	Use:   "runs <run-id>",
	Short: "Show the recorded state of a pipeline run",
	Args:  cobra.ExactArgs(1),
	RunE:  runRuns,
}

func init() {
	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	runs := store.RunStateStore()
	run, err := runs.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("run %s: %w", args[0], err)
	}

	cmd.Printf("Run %s (%s)\n", run.ID, run.Strategy)
	cmd.Printf("  Started:  %s\n", run.StartedAt.Format("2006-01-02 15:04:05"))
	if run.FinishedAt.IsZero() {
		cmd.Println("  Finished: still running")
	} else {
		cmd.Printf("  Finished: %s\n", run.FinishedAt.Format("2006-01-02 15:04:05"))
		cmd.Printf("  Stats:    %d scanned, %d unique, %d sources processed, %d skipped (%s)\n",
			run.Stats.Scanned, run.Stats.Unique,
			run.Stats.SourcesProcessed, run.Stats.SourcesSkipped, run.Stats.Elapsed)
	}

	results, err := runs.SourceResults(cmd.Context(), run.ID)
	if err != nil {
		return fmt.Errorf("source results: %w", err)
	}
	if len(results) == 0 {
		return nil
	}

	cmd.Println("  Sources:")
	for _, r := range results {
		line := fmt.Sprintf("    %-20s %-8s %d scanned, %d added", r.Slug, r.Path, r.Scanned, r.Added)
		if r.Err != nil {
			line += fmt.Sprintf(" (%v)", r.Err)
		}
		cmd.Println(line)
	}
	return nil
}
