package cli

import (
	"github.com/spf13/cobra"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List configured sources and their cache state",
	RunE:  runSources,
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

func runSources(cmd *cobra.Command, _ []string) error {
	manifest, err := loadManifest()
	if err != nil {
		return err
	}

	connector := newConnector(manifest.Defaults())
	cmd.Printf("%-4s %-20s %-8s %-8s %s\n", "PRI", "SLUG", "KIND", "CACHE", "REF")
	for _, source := range manifest.Sources() {
		cache := "missing"
		if connector.HasValidData(connector.Resolve(source.Slug)) {
			cache = "valid"
		}
		kind := source.Kind
		if kind == "" {
			kind = "-"
		}
		cmd.Printf("%-4d %-20s %-8s %-8s %s\n", source.Priority, source.Slug, kind, cache, source.Ref)
	}
	return nil
}
