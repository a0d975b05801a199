package cli

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/areflesh/text-annot/internal/core/domain"
	"github.com/areflesh/text-annot/internal/logger"
)

// isTerminal reports whether f is an interactive terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// describeKey renders a key 1-based for people.
func describeKey(k domain.Key) string {
	return fmt.Sprintf("caption %d, sentence %d", k.Caption+1, k.Sentence+1)
}

// whileQuiet runs fn with log output suppressed and then restores the
// previous setting. The terminal UI reports problems in its status bar.
func whileQuiet(fn func() error) error {
	prev := logger.IsQuiet()
	logger.SetQuiet(true)
	defer logger.SetQuiet(prev)
	return fn()
}
