package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch <slug>",
	Short: "Watch a source's cache directory for validity changes",
	Long: `Watches the cache directory of one source and prints a line each
time it gains or loses valid data files. Useful while raw data is
being downloaded or extracted by external tooling.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	manifest, err := loadManifest()
	if err != nil {
		return err
	}

	slug := args[0]
	found := false
	for _, source := range manifest.Sources() {
		if source.Slug == slug {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("source %q not in manifest", slug)
	}

	connector := newConnector(manifest.Defaults())
	events, err := connector.Watch(cmd.Context(), slug)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	cmd.Printf("Watching %s (ctrl-c to stop)...\n", connector.Resolve(slug))
	for event := range events {
		if event.Valid {
			cmd.Printf("%s: cache became valid\n", event.Slug)
		} else {
			cmd.Printf("%s: cache became invalid\n", event.Slug)
		}
	}
	return nil
}
