// Package jump provides the go-to-caption prompt for the TUI.
package jump

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/areflesh/text-annot/internal/adapters/driving/tui/components/input"
	"github.com/areflesh/text-annot/internal/adapters/driving/tui/messages"
	"github.com/areflesh/text-annot/internal/adapters/driving/tui/styles"
	"github.com/areflesh/text-annot/internal/core/domain"
	"github.com/areflesh/text-annot/internal/core/ports/driving"
)

// ErrNoSession is shown when the view is used before a file is opened.
var ErrNoSession = errors.New("no file is open")

// View asks for a caption number and moves the cursor there.
type View struct {
	styles  *styles.Styles
	caption *input.Field
	session driving.Session
	err     error
	width   int
	height  int
	ready   bool
}

// NewView creates a new jump view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	f := input.NewField(s, "Caption", "number")
	return &View{
		styles:  s,
		caption: f,
		width:   80,
		height:  24,
	}
}

// SetSession sets the session to navigate.
func (v *View) SetSession(session driving.Session) {
	v.session = session
}

// Init focuses the input.
func (v *View) Init() tea.Cmd {
	return v.caption.Focus()
}

// Update handles messages for the jump view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			v.Reset()
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewAnnotate}
			}
		case "enter":
			return v, v.jump()
		}
	}

	var cmd tea.Cmd
	v.caption, cmd = v.caption.Update(msg)
	return v, cmd
}

// jump moves to the 1-based caption typed by the user.
func (v *View) jump() tea.Cmd {
	if v.session == nil {
		v.err = ErrNoSession
		return nil
	}

	count := v.session.Document().CaptionCount()
	n, err := strconv.Atoi(strings.TrimSpace(v.caption.Value()))
	if err != nil {
		v.err = fmt.Errorf("%w: enter a caption number between 1 and %d", domain.ErrInvalidInput, count)
		return nil
	}
	if err := v.session.JumpToCaption(n - 1); err != nil {
		v.err = fmt.Errorf("caption must be between 1 and %d: %w", count, err)
		return nil
	}

	v.Reset()
	pos := v.session.Position()
	return func() tea.Msg {
		return messages.PositionChanged{Key: pos}
	}
}

// View renders the jump view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Jump to caption"))
	b.WriteString("\n\n")
	if v.session != nil {
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("Captions 1 to %d", v.session.Document().CaptionCount())))
		b.WriteString("\n\n")
	}
	b.WriteString(v.caption.View())
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	b.WriteString(v.styles.Help.Render("[enter] jump  [esc] cancel"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.caption.SetWidth(width - 4)
}

// Err returns the last error shown by the view.
func (v *View) Err() error {
	return v.err
}

// Reset clears the input and error.
func (v *View) Reset() {
	v.caption.Reset()
	v.err = nil
}
