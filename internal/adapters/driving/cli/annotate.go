package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/areflesh/text-annot/internal/adapters/driving/tui"
)

var annotateCmd = &cobra.Command{
	Use:   "annotate [file]",
	Short: "Annotate a file in the terminal UI",
	Long: `Open the interactive terminal UI. With a file argument the file is opened
straight away; otherwise you can type a path in the UI.

Controls:
  Tab/Shift+Tab  Move between subject, predicate and object
  Ctrl+S         Save the annotation
  Ctrl+N/Ctrl+P  Next / previous sentence
  Ctrl+U         Next unannotated sentence
  Ctrl+G         Jump to a caption
  Ctrl+E         Edit the saved annotation
  Ctrl+X         Export
  Esc            Back
  Ctrl+C         Quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnnotate,
}

func init() {
	rootCmd.AddCommand(annotateCmd)
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return errors.New("annotate needs an interactive terminal; use save and export for scripts")
	}

	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	app, err := tui.NewApp(&tui.Ports{
		Sessions: sessionOpener,
		Settings: settingsService,
	})
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	app.WithContext(cmd.Context())
	if len(args) == 1 {
		app.WithFile(args[0])
	}

	if err := whileQuiet(app.Run); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
