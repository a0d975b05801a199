// Package export provides the export table view for the TUI.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/areflesh/text-annot/internal/adapters/driving/tui/components/status"
	"github.com/areflesh/text-annot/internal/adapters/driving/tui/keymap"
	"github.com/areflesh/text-annot/internal/adapters/driving/tui/messages"
	"github.com/areflesh/text-annot/internal/adapters/driving/tui/styles"
	"github.com/areflesh/text-annot/internal/core/domain"
	"github.com/areflesh/text-annot/internal/core/ports/driving"
)

// ErrNoSession is shown when the view is used before a file is opened.
var ErrNoSession = errors.New("no file is open")

// View shows the annotations of the open document as a table.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	table     table.Model
	statusbar *status.Bar

	session driving.Session
	export  *domain.Export
	dir     string
	indent  bool

	width  int
	height int
	ready  bool
	err    error
}

// NewView creates a new export view. Files are written to dir, or the
// working directory when dir is empty.
func NewView(s *styles.Styles, km *keymap.KeyMap, dir string) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	t := table.New(
		table.WithColumns(columns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(s.Theme().Border).
		BorderBottom(true).
		Bold(true)
	ts.Selected = ts.Selected.
		Foreground(s.Theme().Foreground).
		Background(s.Theme().Primary)
	t.SetStyles(ts)

	return &View{
		styles:    s,
		keymap:    km,
		table:     t,
		statusbar: status.NewBar(s, km, km.ExportHelp()...),
		dir:       dir,
		indent:    true,
		width:     80,
		height:    24,
	}
}

// columns sizes the table for the terminal width.
func columns(width int) []table.Column {
	text := width - 62
	if text < 20 {
		text = 20
	}
	return []table.Column{
		{Title: "Caption", Width: 7},
		{Title: "Sentence", Width: 8},
		{Title: "Text", Width: text},
		{Title: "Subject", Width: 14},
		{Title: "Predicate", Width: 14},
		{Title: "Object", Width: 14},
	}
}

// SetSession sets the session to export.
func (v *View) SetSession(session driving.Session) {
	v.session = session
}

// SetIndent controls whether written JSON is indented.
func (v *View) SetIndent(indent bool) {
	v.indent = indent
}

// Init rebuilds the table from the session.
func (v *View) Init() tea.Cmd {
	v.Refresh()
	return nil
}

// Refresh rebuilds the export and table rows from the session.
func (v *View) Refresh() {
	v.err = nil
	v.statusbar.Clear()
	if v.session == nil {
		v.export = nil
		v.table.SetRows(nil)
		return
	}

	v.export = v.session.Export()
	exportRows := v.export.Rows()
	rows := make([]table.Row, 0, len(exportRows))
	for _, r := range exportRows {
		rows = append(rows, table.Row{
			strconv.Itoa(r.CaptionIndex + 1),
			strconv.Itoa(r.SentenceIndex + 1),
			r.Sentence,
			r.Subject,
			r.Predicate,
			r.Object,
		})
	}
	v.table.SetRows(rows)
	v.table.GotoTop()
}

// Update handles messages for the export view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.ExportWritten:
		if msg.Err != nil {
			v.err = msg.Err
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(msg.Err.Error())
			return v, nil
		}
		v.err = nil
		v.statusbar.SetState(status.StateSaved)
		v.statusbar.SetMessage(fmt.Sprintf("Exported %d annotations to %s", msg.Count, msg.Path))
		return v, nil

	case tea.KeyMsg:
		switch {
		case keymap.Matches(msg.String(), v.keymap.Back):
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewAnnotate}
			}
		case keymap.Matches(msg.String(), v.keymap.Write):
			return v, v.write()
		}
	}

	var cmd tea.Cmd
	v.table, cmd = v.table.Update(msg)
	return v, cmd
}

// write returns a command that writes the export JSON and reports
// messages.ExportWritten.
func (v *View) write() tea.Cmd {
	export := v.export
	dir := v.dir
	indent := v.indent
	return func() tea.Msg {
		if export == nil {
			return messages.ExportWritten{Err: ErrNoSession}
		}
		path := filepath.Join(dir, domain.ExportFileName(export.Filename))
		if err := writeJSON(path, export, indent); err != nil {
			return messages.ExportWritten{Path: path, Err: err}
		}
		return messages.ExportWritten{Path: path, Count: export.AnnotatedSentences}
	}
}

func writeJSON(path string, export *domain.Export, indent bool) error {
	var (
		data []byte
		err  error
	)
	if indent {
		data, err = json.MarshalIndent(export, "", "  ")
	} else {
		data, err = json.Marshal(export)
	}
	if err != nil {
		return fmt.Errorf("encoding export: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// View renders the export view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Export"))
	b.WriteString("\n\n")

	if v.export == nil {
		b.WriteString(v.styles.Muted.Render("No file is open."))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[esc] back"))
		return b.String()
	}

	b.WriteString(v.styles.Subtitle.Render(v.export.Filename))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("%d of %d sentences annotated across %d captions",
		v.export.AnnotatedSentences, v.export.TotalSentences, v.export.TotalCaptions)))
	b.WriteString("\n\n")

	if len(v.export.Annotations) == 0 {
		b.WriteString(v.styles.Muted.Render("Nothing annotated yet."))
	} else {
		b.WriteString(v.styles.Border.Render(v.table.View()))
	}
	b.WriteString("\n\n")

	b.WriteString(v.statusbar.View())
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.table.SetColumns(columns(width))
	tableHeight := height - 10
	if tableHeight < 3 {
		tableHeight = 3
	}
	v.table.SetHeight(tableHeight)
	v.statusbar.SetWidth(width)
}

// Export returns the export currently displayed.
func (v *View) Export() *domain.Export {
	return v.export
}

// Rows returns the table rows.
func (v *View) Rows() []table.Row {
	return v.table.Rows()
}

// Cursor returns the selected table row.
func (v *View) Cursor() int {
	return v.table.Cursor()
}

// Err returns the last error shown by the view.
func (v *View) Err() error {
	return v.err
}

// StatusBar returns the view's status bar.
func (v *View) StatusBar() *status.Bar {
	return v.statusbar
}
