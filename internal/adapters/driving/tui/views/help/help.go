// Package help provides the keybinding reference view for the TUI.
package help

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/areflesh/text-annot/internal/adapters/driving/tui/keymap"
	"github.com/areflesh/text-annot/internal/adapters/driving/tui/messages"
	"github.com/areflesh/text-annot/internal/adapters/driving/tui/styles"
)

// View lists every keybinding.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model
	back   messages.ViewType
	width  int
	height int
	ready  bool
}

// NewView creates a new help view.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	h := help.New()
	h.ShowAll = true
	h.Styles.FullKey = s.Subtitle
	h.Styles.FullDesc = s.Normal
	h.Styles.FullSeparator = s.Muted

	return &View{
		styles: s,
		keymap: km,
		help:   h,
		back:   messages.ViewMenu,
		width:  80,
		height: 24,
	}
}

// SetReturnView sets where esc leads.
func (v *View) SetReturnView(view messages.ViewType) {
	v.back = view
}

// Init initialises the help view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
	case tea.KeyMsg:
		if keymap.Matches(msg.String(), v.keymap.Back) || msg.String() == "q" {
			back := v.back
			return v, func() tea.Msg {
				return messages.ViewChanged{View: back}
			}
		}
	}
	return v, nil
}

// View renders the help view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Normal.Render(
		"Open a text file with one caption per line. Each caption is split into\n" +
			"sentences; give every sentence a subject, predicate and object."))
	b.WriteString("\n\n")
	b.WriteString(v.help.View(v.keymap))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Muted.Render("Menu: j/k or ↑/↓ to move, enter to select, q to quit."))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Export: w writes annotations_<name>.json to the working directory."))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[esc] back"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.help.Width = width
}
