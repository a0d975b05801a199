package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/spf13/cobra"

	"github.com/areflesh/text-annot/internal/core/domain"
	"github.com/areflesh/text-annot/internal/core/ports/driving"
	"github.com/areflesh/text-annot/internal/logger"
)

const progressBarWidth = 40

var progressCmd = &cobra.Command{
	Use:   "progress <file>",
	Short: "Show how many sentences are annotated",
	Long: `Print the number of annotated sentences in a file and a progress bar.

With --watch, the numbers are printed again whenever the annotation file
changes, for example while someone else annotates in another terminal.`,
	Args: cobra.ExactArgs(1),
	RunE: runProgress,
}

func init() {
	progressCmd.Flags().BoolP("watch", "w", false, "Re-print when the annotation file changes")
	rootCmd.AddCommand(progressCmd)
}

func runProgress(cmd *cobra.Command, args []string) error {
	watch, _ := cmd.Flags().GetBool("watch")

	session, err := openSession(cmd, args[0])
	if err != nil {
		return err
	}

	bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(progressBarWidth), progress.WithoutPercentage())
	printProgress(cmd, session, bar)

	if !watch {
		return nil
	}
	if fileWatcher == nil {
		return errors.New("file watcher not configured")
	}

	path := session.StorePath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}

	events, err := fileWatcher.Watch(cmd.Context(), path)
	if err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}
	cmd.Printf("Watching %s (Ctrl+C to stop)\n", path)

	for range events {
		if err := session.Reload(cmd.Context()); err != nil {
			// A reader can catch the file mid-edit by another tool.
			logger.Warn("reloading %s: %v", path, err)
			continue
		}
		printProgress(cmd, session, bar)
	}
	return nil
}

func printProgress(cmd *cobra.Command, session driving.Session, bar progress.Model) {
	p := session.Progress()
	cmd.Printf("%s: %d/%d sentences annotated (%d%%)\n",
		session.Document().Filename, p.Annotated, p.Total, p.Percent())
	cmd.Printf("%s\n", bar.ViewAs(p.Ratio()))
	if p.Complete() {
		cmd.Println("All sentences are annotated.")
	} else if next, ok := firstUnannotated(session); ok {
		cmd.Printf("Next unannotated: %s (%s)\n", next, describeKey(next))
	}
}

// firstUnannotated scans from the start of the document without moving
// the session's cursor.
func firstUnannotated(session driving.Session) (domain.Key, bool) {
	for _, k := range session.Document().Keys() {
		if !session.IsAnnotated(k) {
			return k, true
		}
	}
	return domain.Key{}, false
}
