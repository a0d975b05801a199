// Package open provides the file open view for the TUI.
package open

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/areflesh/text-annot/internal/adapters/driving/tui/components/input"
	"github.com/areflesh/text-annot/internal/adapters/driving/tui/messages"
	"github.com/areflesh/text-annot/internal/adapters/driving/tui/styles"
	"github.com/areflesh/text-annot/internal/core/ports/driving"
)

// ErrNoSessionOpener is returned when the view has no opener to call.
var ErrNoSessionOpener = errors.New("session opener not available")

// ErrEmptyPath is shown when enter is pressed without a path.
var ErrEmptyPath = errors.New("enter the path of a text file")

// View asks for a text file and opens it.
type View struct {
	styles  *styles.Styles
	path    *input.Field
	opener  driving.SessionOpener
	ctx     context.Context
	err     error
	opening bool
	width   int
	height  int
	ready   bool
}

// NewView creates a new open view.
func NewView(s *styles.Styles, opener driving.SessionOpener) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		path:   input.NewField(s, "File", "captions.txt"),
		opener: opener,
		ctx:    context.Background(),
		width:  80,
		height: 24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init focuses the path input.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.path.Focus(), v.path.Init())
}

// Update handles messages for the open view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SessionOpened:
		v.opening = false
		if msg.Session == nil {
			v.err = msg.Err
		}
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		case "enter":
			path := strings.TrimSpace(v.path.Value())
			if path == "" {
				v.err = ErrEmptyPath
				return v, nil
			}
			v.err = nil
			v.opening = true
			return v, v.Open(path)
		}
	}

	var cmd tea.Cmd
	v.path, cmd = v.path.Update(msg)
	return v, cmd
}

// Open returns a command that opens path and reports messages.SessionOpened.
func (v *View) Open(path string) tea.Cmd {
	ctx := v.ctx
	opener := v.opener
	return func() tea.Msg {
		if opener == nil {
			return messages.SessionOpened{Path: path, Err: ErrNoSessionOpener}
		}
		session, err := opener.OpenFile(ctx, path)
		return messages.SessionOpened{Path: path, Session: session, Err: err}
	}
}

// View renders the open view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Open file"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Muted.Render("One caption per line. Existing annotations are loaded automatically."))
	b.WriteString("\n\n")
	b.WriteString(v.path.View())
	b.WriteString("\n\n")

	switch {
	case v.opening:
		b.WriteString(v.styles.Muted.Render("Opening..."))
		b.WriteString("\n\n")
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	b.WriteString(v.styles.Help.Render("[enter] open  [esc] back"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.path.SetWidth(width - 4)
}

// SetPath fills the path input.
func (v *View) SetPath(path string) {
	v.path.SetValue(path)
}

// Path returns the path input value.
func (v *View) Path() string {
	return v.path.Value()
}

// Err returns the last error shown by the view.
func (v *View) Err() error {
	return v.err
}

// Reset clears the input and error.
func (v *View) Reset() {
	v.path.Reset()
	v.err = nil
	v.opening = false
}
