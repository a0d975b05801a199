// Package annotate provides the sentence annotation view for the TUI.
//
// The view edits one sentence at a time: it shows the caption with the
// current sentence highlighted, the saved triple if any, and three inputs
// for subject, predicate and object. Session calls run on the Update
// goroutine because a session is not safe for concurrent use.
package annotate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/areflesh/text-annot/internal/adapters/driving/tui/components/input"
	"github.com/areflesh/text-annot/internal/adapters/driving/tui/components/status"
	"github.com/areflesh/text-annot/internal/adapters/driving/tui/keymap"
	"github.com/areflesh/text-annot/internal/adapters/driving/tui/messages"
	"github.com/areflesh/text-annot/internal/adapters/driving/tui/styles"
	"github.com/areflesh/text-annot/internal/core/domain"
	"github.com/areflesh/text-annot/internal/core/ports/driving"
)

// Input field indices.
const (
	FieldSubject = iota
	FieldPredicate
	FieldObject
	fieldCount
)

// ErrNoSession is shown when the view is used before a file is opened.
var ErrNoSession = errors.New("no file is open")

// View is the annotation form for the sentence under the cursor.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	fields    [fieldCount]*input.Field
	focused   int
	bar       *progress.Model
	statusbar *status.Bar

	session     driving.Session
	ctx         context.Context
	showCaption bool

	width  int
	height int
	ready  bool
	err    error
}

// NewView creates a new annotate view.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	bar := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)

	v := &View{
		styles:      s,
		keymap:      km,
		bar:         &bar,
		statusbar:   status.NewBar(s, km, km.AnnotateHelp()...),
		ctx:         context.Background(),
		showCaption: true,
		width:       80,
		height:      24,
	}
	v.fields[FieldSubject] = input.NewField(s, "Subject", "who or what")
	v.fields[FieldPredicate] = input.NewField(s, "Predicate", "does what")
	v.fields[FieldObject] = input.NewField(s, "Object", "to whom or what")
	return v
}

// WithContext sets the context used for saves.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// SetSession switches the view to a new session.
func (v *View) SetSession(session driving.Session) {
	v.session = session
	v.err = nil
	v.statusbar.Clear()
	v.Refresh()
}

// Session returns the session being annotated.
func (v *View) Session() driving.Session {
	return v.session
}

// SetShowCaption controls whether the whole caption is shown around the
// current sentence.
func (v *View) SetShowCaption(show bool) {
	v.showCaption = show
}

// Init focuses the first input.
func (v *View) Init() tea.Cmd {
	return v.focus(v.focused)
}

// Refresh reloads the inputs from the session draft and updates the status
// bar. Call it after the cursor was moved from outside the view.
func (v *View) Refresh() {
	if v.session == nil {
		for _, f := range v.fields {
			f.Reset()
		}
		return
	}
	v.loadDraft()
	v.updateStatus()
}

// Update handles messages for the annotate view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.AnnotationSaved:
		v.handleSaved(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

//nolint:gocyclo // one branch per binding
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()

	switch {
	case keymap.Matches(key, v.keymap.Back):
		v.storeDraft()
		return v, changeView(messages.ViewMenu)
	case v.session == nil:
		v.setError(ErrNoSession)
		return v, nil
	case keymap.Matches(key, v.keymap.NextField):
		return v, v.focus((v.focused + 1) % fieldCount)
	case keymap.Matches(key, v.keymap.PrevField):
		return v, v.focus((v.focused + fieldCount - 1) % fieldCount)
	case keymap.Matches(key, v.keymap.Save):
		return v, v.save()
	case keymap.Matches(key, v.keymap.Next):
		v.move(v.session.Next(), "Already at the last sentence")
		return v, nil
	case keymap.Matches(key, v.keymap.Prev):
		v.move(v.session.Prev(), "Already at the first sentence")
		return v, nil
	case keymap.Matches(key, v.keymap.NextUnannotated):
		_, ok := v.session.NextUnannotated()
		v.move(ok, "No unannotated sentence after this one")
		return v, nil
	case keymap.Matches(key, v.keymap.EditSaved):
		v.editSaved()
		return v, nil
	case keymap.Matches(key, v.keymap.Jump):
		v.storeDraft()
		return v, changeView(messages.ViewJump)
	case keymap.Matches(key, v.keymap.Export):
		v.storeDraft()
		return v, changeView(messages.ViewExport)
	}

	var cmd tea.Cmd
	v.fields[v.focused], cmd = v.fields[v.focused].Update(msg)
	v.storeDraft()
	return v, cmd
}

// save stores the form for the current sentence and reports the outcome
// as messages.AnnotationSaved.
func (v *View) save() tea.Cmd {
	v.storeDraft()
	a, err := v.session.Save(v.ctx, v.session.Draft())
	return func() tea.Msg {
		return messages.AnnotationSaved{Annotation: a, Err: err}
	}
}

func (v *View) handleSaved(msg messages.AnnotationSaved) {
	switch {
	case msg.Err == nil:
		v.err = nil
		v.loadDraft()
		v.statusbar.SetState(status.StateSaved)
		v.statusbar.SetMessage(fmt.Sprintf("Saved %s", describe(msg.Annotation.Key())))
	case errors.Is(msg.Err, domain.ErrSave):
		// Kept in memory; the inputs stay filled so the save can be retried.
		v.err = msg.Err
		v.statusbar.SetState(status.StateWarning)
		v.statusbar.SetMessage(fmt.Sprintf("Kept in memory, not written: %v", msg.Err))
	default:
		v.setError(msg.Err)
	}
	v.updateStatus()
}

func (v *View) move(moved bool, atEdge string) {
	v.err = nil
	v.statusbar.Clear()
	if !moved {
		v.statusbar.SetState(status.StateWarning)
		v.statusbar.SetMessage(atEdge)
	}
	v.loadDraft()
	v.updateStatus()
}

func (v *View) editSaved() {
	if !v.session.EditSaved() {
		v.statusbar.SetState(status.StateWarning)
		v.statusbar.SetMessage("Nothing saved for this sentence")
		return
	}
	v.statusbar.Clear()
	v.loadDraft()
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

func (v *View) focus(i int) tea.Cmd {
	v.focused = i
	var cmd tea.Cmd
	for j, f := range v.fields {
		if j == i {
			cmd = f.Focus()
		} else {
			f.Blur()
		}
	}
	return cmd
}

// storeDraft copies the inputs into the session draft.
func (v *View) storeDraft() {
	if v.session == nil {
		return
	}
	v.session.SetDraft(v.Triple())
}

// loadDraft copies the session draft into the inputs.
func (v *View) loadDraft() {
	d := v.session.Draft()
	v.fields[FieldSubject].SetValue(d.Subject)
	v.fields[FieldPredicate].SetValue(d.Predicate)
	v.fields[FieldObject].SetValue(d.Object)
}

func (v *View) updateStatus() {
	cur := v.session.Current()
	v.statusbar.SetPosition(fmt.Sprintf("Caption %d/%d · Sentence %d/%d",
		cur.Key.Caption+1, cur.CaptionCount, cur.Key.Sentence+1, cur.SentenceCount))
	v.statusbar.SetProgress(v.session.Progress())
}

// Triple returns the current input values.
func (v *View) Triple() domain.Triple {
	return domain.Triple{
		Subject:   v.fields[FieldSubject].Value(),
		Predicate: v.fields[FieldPredicate].Value(),
		Object:    v.fields[FieldObject].Value(),
	}
}

// View renders the annotate view.
func (v *View) View() string {
	var b strings.Builder

	if v.session == nil {
		b.WriteString(v.styles.Title.Render("Annotate"))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Muted.Render("No file is open. Choose \"Open file\" from the menu."))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[esc] back"))
		return b.String()
	}

	cur := v.session.Current()
	b.WriteString(v.styles.Title.Render(fmt.Sprintf("Annotate %s", v.session.Document().Filename)))
	b.WriteString("\n\n")

	if v.showCaption {
		b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("Caption %d", cur.Key.Caption+1)))
		b.WriteString("\n")
		b.WriteString(v.renderCaption(cur))
		b.WriteString("\n\n")
	}

	b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("Sentence %d", cur.Key.Sentence+1)))
	b.WriteString("\n")
	b.WriteString(v.styles.Normal.Render(cur.Sentence.Text))
	b.WriteString("\n\n")

	if cur.Annotated() {
		a := cur.Annotation
		b.WriteString(v.styles.Success.Render(fmt.Sprintf("Saved: (%s, %s, %s)", a.Subject, a.Predicate, a.Object)))
	} else {
		b.WriteString(v.styles.Muted.Render("Not annotated yet"))
	}
	b.WriteString("\n\n")

	for _, f := range v.fields {
		b.WriteString(f.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	p := v.session.Progress()
	b.WriteString(v.bar.ViewAs(p.Ratio()))
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf(" %d/%d", p.Annotated, p.Total)))
	b.WriteString("\n\n")

	b.WriteString(v.statusbar.View())
	return b.String()
}

// renderCaption renders every sentence of the current caption, coloured by
// annotation state, with the current sentence highlighted.
func (v *View) renderCaption(cur domain.SentenceView) string {
	parts := make([]string, 0, len(cur.Caption.Sentences))
	for _, s := range cur.Caption.Sentences {
		k := domain.NewKey(cur.Key.Caption, s.Index)
		switch {
		case k == cur.Key:
			parts = append(parts, v.styles.Current.Render(s.Text))
		case v.session.IsAnnotated(k):
			parts = append(parts, v.styles.Annotated.Render(s.Text))
		default:
			parts = append(parts, v.styles.Unannotated.Render(s.Text))
		}
	}
	return strings.Join(parts, " ")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	for _, f := range v.fields {
		f.SetWidth(width - 4)
	}
	v.statusbar.SetWidth(width)
	barWidth := width - 12
	if barWidth > 60 {
		barWidth = 60
	}
	if barWidth < 10 {
		barWidth = 10
	}
	v.bar.Width = barWidth
}

// Focused returns the index of the focused input.
func (v *View) Focused() int {
	return v.focused
}

// Err returns the last error shown by the view.
func (v *View) Err() error {
	return v.err
}

// StatusBar returns the view's status bar.
func (v *View) StatusBar() *status.Bar {
	return v.statusbar
}

func changeView(view messages.ViewType) tea.Cmd {
	return func() tea.Msg {
		return messages.ViewChanged{View: view}
	}
}

func describe(k domain.Key) string {
	return fmt.Sprintf("caption %d, sentence %d", k.Caption+1, k.Sentence+1)
}
