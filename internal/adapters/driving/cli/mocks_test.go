package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/areflesh/text-annot/internal/adapters/driven/storage/memory"
	"github.com/areflesh/text-annot/internal/core/services"
	"github.com/areflesh/text-annot/internal/segmenter"
)

const testCaptions = "A cat sleeps. It dreams.\nA dog runs."

// fakeWatcher emits one change, after running onChange, then closes.
type fakeWatcher struct {
	onChange func()
	watched  string
}

func (w *fakeWatcher) Watch(_ context.Context, path string) (<-chan struct{}, error) {
	w.watched = path
	ch := make(chan struct{}, 1)
	if w.onChange != nil {
		w.onChange()
	}
	ch <- struct{}{}
	close(ch)
	return ch, nil
}

type testEnv struct {
	store    *memory.AnnotationStore
	config   *memory.ConfigStore
	watcher  *fakeWatcher
	captions string
}

// setupTestServices installs services backed by memory stores and writes
// a captions file to a temp dir.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()

	oldSessions, oldSettings, oldWatcher := sessionOpener, settingsService, fileWatcher
	t.Cleanup(func() {
		sessionOpener, settingsService, fileWatcher = oldSessions, oldSettings, oldWatcher
	})

	env := &testEnv{
		store:   memory.NewAnnotationStore(),
		config:  memory.NewConfigStore(),
		watcher: &fakeWatcher{},
	}
	SetServices(&Services{
		Sessions: services.NewSessionService(segmenter.New(), env.store),
		Settings: services.NewSettingsService(env.config),
		Watcher:  env.watcher,
	})

	env.captions = filepath.Join(t.TempDir(), "captions.txt")
	require.NoError(t, os.WriteFile(env.captions, []byte(testCaptions), 0o600))
	return env
}

// execute runs the root command with args, starting from default flags.
func execute(args ...string) (string, error) {
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}
