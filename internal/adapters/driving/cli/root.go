// Package cli implements the textannot command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/areflesh/text-annot/internal/core/domain"
	"github.com/areflesh/text-annot/internal/core/ports/driven"
	"github.com/areflesh/text-annot/internal/core/ports/driving"
	"github.com/areflesh/text-annot/internal/logger"
)

var version = "dev"

// Services are the ports the commands drive.
type Services struct {
	Sessions driving.SessionOpener
	Settings driving.SettingsService
	Watcher  driven.FileWatcher
}

// Bootstrap builds services once flags are parsed.
type Bootstrap func(configDir string) (*Services, error)

var (
	sessionOpener   driving.SessionOpener
	settingsService driving.SettingsService
	fileWatcher     driven.FileWatcher

	bootstrap Bootstrap

	flagVerbose   bool
	flagConfigDir string
)

var rootCmd = &cobra.Command{
	Use:   "textannot",
	Short: "Annotate captions with subject-predicate-object triples",
	Long: `textannot splits a text file into captions (one per line) and
sentences, and records a subject, predicate and object for each sentence.

Annotations are saved as JSON next to your work after every change, so a
session can be resumed at any time.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Print debug output")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "Config directory (default ~/.textannot)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap registers the function that builds services at startup.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices installs services directly, bypassing the bootstrap.
func SetServices(s *Services) {
	sessionOpener = s.Sessions
	settingsService = s.Settings
	fileWatcher = s.Watcher
}

// Execute runs the root command. Output goes to stdout; ctx is cancelled
// on interrupt by the caller.
func Execute(ctx context.Context) error {
	rootCmd.SetOut(os.Stdout)
	return rootCmd.ExecuteContext(ctx)
}

func setup(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(flagVerbose)

	if bootstrap == nil || sessionOpener != nil {
		return nil
	}

	s, err := bootstrap(flagConfigDir)
	if err != nil {
		return fmt.Errorf("startup: %w", err)
	}
	SetServices(s)
	return nil
}

// openSession opens path for a non-interactive command. Unlike the terminal
// UI, a document whose annotations cannot be loaded is an error here so
// that nothing overwrites them.
func openSession(cmd *cobra.Command, path string) (driving.Session, error) {
	if sessionOpener == nil {
		return nil, errors.New("session service not configured")
	}

	session, err := sessionOpener.OpenFile(cmd.Context(), path)
	if err != nil {
		if errors.Is(err, domain.ErrLoad) {
			return nil, fmt.Errorf("%w (fix or move the annotation file and retry)", err)
		}
		return nil, err
	}
	return session, nil
}
