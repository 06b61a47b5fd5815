package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DiAbL0Tin/aggregator-nicknames/internal/core/services"
)

var flagCleanDatasets bool

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove cached data for sources no longer in the manifest",
	RunE:  runClean,
}

func init() {
	cleanCmd.Flags().BoolVar(&flagCleanDatasets, "datasets", false, "also delete stored datasets of removed sources")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, _ []string) error {
	manifest, err := loadManifest()
	if err != nil {
		return err
	}

	slugs := make([]string, 0)
	valid := make(map[string]struct{})
	for _, source := range manifest.Sources() {
		slugs = append(slugs, source.Slug)
		valid[source.Slug] = struct{}{}
	}

	connector := newConnector(manifest.Defaults())
	removed, err := connector.CleanCache(slugs)
	if err != nil {
		return fmt.Errorf("clean: %w", err)
	}
	cmd.Printf("Removed %d stale cache directories.\n", removed)

	if !flagCleanDatasets {
		return nil
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	// Datasets carry the same slugs as cache directories; anything the
	// manifest no longer names gets dropped. The merged output dataset
	// is never a manifest slug and always survives.
	datasets := store.DatasetStore()
	stored, err := datasets.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing datasets: %w", err)
	}
	dropped := 0
	for _, slug := range stored {
		if _, ok := valid[slug]; ok || slug == services.OutputSlug {
			continue
		}
		if err := datasets.Delete(cmd.Context(), slug); err != nil {
			return fmt.Errorf("deleting dataset %s: %w", slug, err)
		}
		dropped++
	}
	cmd.Printf("Removed %d stale datasets.\n", dropped)
	return nil
}
