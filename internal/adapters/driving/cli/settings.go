package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/DiAbL0Tin/aggregator-nicknames/internal/adapters/driven/config/file"
)

var flagConfigDir string

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change persistent settings. Settings hold defaults the
manifest does not, such as the preferred output path. Flags always
override settings, and settings override manifest defaults.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsGet,
}

func init() {
	settingsCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "settings directory (default ~/.aggregator)")
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsGetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func openSettings() (*file.ConfigStore, error) {
	store, err := file.NewConfigStore(flagConfigDir)
	if err != nil {
		return nil, fmt.Errorf("opening settings: %w", err)
	}
	return store, nil
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	store, err := openSettings()
	if err != nil {
		return err
	}

	cmd.Printf("Settings file: %s\n", store.Path())
	keys := []string{"output.path", "cache.dir", "workers"}
	sort.Strings(keys)
	for _, key := range keys {
		if value, ok := store.Get(key); ok {
			cmd.Printf("  %s = %v\n", key, value)
		} else {
			cmd.Printf("  %s = (unset)\n", key)
		}
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	store, err := openSettings()
	if err != nil {
		return err
	}
	if err := store.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("saving setting: %w", err)
	}
	cmd.Printf("%s = %s\n", args[0], args[1])
	return nil
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	store, err := openSettings()
	if err != nil {
		return err
	}
	value, ok := store.Get(args[0])
	if !ok {
		return fmt.Errorf("setting %q is not set", args[0])
	}
	cmd.Printf("%v\n", value)
	return nil
}
