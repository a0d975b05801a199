// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/areflesh/text-annot/internal/adapters/driving/tui/keymap"
	"github.com/areflesh/text-annot/internal/adapters/driving/tui/styles"
	"github.com/areflesh/text-annot/internal/core/domain"
)

// State represents the current application state for display.
type State string

const (
	StateReady   State = "ready"
	StateSaving  State = "saving"
	StateSaved   State = "saved"
	StateWarning State = "warning"
	StateError   State = "error"
)

// Bar displays the cursor position, progress and keybinding hints.
type Bar struct {
	styles   *styles.Styles
	bindings []key.Binding
	state    State
	message  string
	position string
	progress domain.Progress
	width    int
}

// NewBar creates a new status bar component showing the given hints.
// With no hints it falls back to the keymap's short help.
func NewBar(s *styles.Styles, km *keymap.KeyMap, hints ...key.Binding) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	if len(hints) == 0 {
		hints = km.ShortHelp()
	}

	return &Bar{
		styles:   s,
		bindings: hints,
		state:    StateReady,
		width:    80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	// Bar is mostly passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the state, message, position and progress.
func (s *Bar) renderLeft() string {
	parts := make([]string, 0, 3)

	switch s.state {
	case StateSaving:
		parts = append(parts, s.styles.Muted.Render("Saving..."))
	case StateSaved:
		parts = append(parts, s.styles.Success.Render(s.messageOr("Saved")))
	case StateWarning:
		parts = append(parts, s.styles.Warning.Render(s.messageOr("Warning")))
	case StateError:
		if s.message != "" {
			parts = append(parts, s.styles.Error.Render(fmt.Sprintf("Error: %s", s.message)))
		} else {
			parts = append(parts, s.styles.Error.Render("Error"))
		}
	case StateReady:
		if s.message != "" {
			parts = append(parts, s.styles.Normal.Render(s.message))
		}
	}

	if s.position != "" {
		parts = append(parts, s.styles.Normal.Render(s.position))
	}
	if s.progress.Total > 0 {
		parts = append(parts, s.styles.Muted.Render(fmt.Sprintf(
			"%d/%d annotated (%d%%)", s.progress.Annotated, s.progress.Total, s.progress.Percent(),
		)))
	}
	if len(parts) == 0 {
		return s.styles.Muted.Render("Ready")
	}
	return strings.Join(parts, s.styles.Muted.Render(" · "))
}

func (s *Bar) messageOr(fallback string) string {
	if s.message != "" {
		return s.message
	}
	return fallback
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	hints := make([]string, 0, len(s.bindings))
	for _, b := range s.bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets a custom message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetPosition sets the position text, e.g. "Caption 1/2 · Sentence 2/2".
func (s *Bar) SetPosition(position string) {
	s.position = position
}

// Position returns the position text.
func (s *Bar) Position() string {
	return s.position
}

// SetProgress sets the annotation progress.
func (s *Bar) SetProgress(p domain.Progress) {
	s.progress = p
}

// Progress returns the annotation progress.
func (s *Bar) Progress() domain.Progress {
	return s.progress
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the state and message, keeping position and progress.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
}
