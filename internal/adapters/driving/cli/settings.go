package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change settings stored in the config file.

Keys:
  store.dir              Directory holding one annotation file per text file
  store.path             Single annotation file shared by all text files
  segmenter.terminators  Characters that end a sentence
  export.indent          Pretty-print exported JSON (true/false)
  tui.show_caption       Show the whole caption above the sentence (true/false)`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:     "set <key> <value>",
	Short:   "Change a setting",
	Example: "  textannot settings set store.dir ~/annotations\n  textannot settings set export.indent false",
	Args:    cobra.ExactArgs(2),
	RunE:    runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Printf("Config file: %s\n", settingsService.ConfigPath())
	cmd.Println()

	cmd.Println("[Store]")
	cmd.Printf("  Dir: %s\n", settings.Store.Dir)
	if settings.Store.Scoped() {
		cmd.Println("  Path: (one file per document)")
	} else {
		cmd.Printf("  Path: %s\n", settings.Store.Path)
	}
	cmd.Println()

	cmd.Println("[Segmenter]")
	cmd.Printf("  Terminators: %q\n", settings.Segmenter.Terminators)
	cmd.Println()

	cmd.Println("[Export]")
	cmd.Printf("  Indent: %t\n", settings.Export.Indent)
	cmd.Println()

	cmd.Println("[TUI]")
	cmd.Printf("  Show caption: %t\n", settings.TUI.ShowCaption)

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return err
	}

	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}
