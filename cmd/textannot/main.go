// Command textannot annotates the sentences of a caption file with
// subject-predicate-object triples.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/areflesh/text-annot/internal/adapters/driven/config/file"
	"github.com/areflesh/text-annot/internal/adapters/driven/storage/jsonfile"
	"github.com/areflesh/text-annot/internal/adapters/driven/watch"
	"github.com/areflesh/text-annot/internal/adapters/driving/cli"
	"github.com/areflesh/text-annot/internal/core/services"
	"github.com/areflesh/text-annot/internal/segmenter"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func bootstrap(configDir string) (*cli.Services, error) {
	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	seg := segmenter.New(segmenter.WithTerminators(settings.Segmenter.Terminators))
	store := jsonfile.NewStore(settings.Store)

	return &cli.Services{
		Sessions: services.NewSessionService(seg, store),
		Settings: settingsService,
		Watcher:  watch.NewWatcher(),
	}, nil
}
