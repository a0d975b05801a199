package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/areflesh/text-annot/internal/adapters/driving/tui/components/status"
	"github.com/areflesh/text-annot/internal/adapters/driving/tui/keymap"
	"github.com/areflesh/text-annot/internal/adapters/driving/tui/messages"
	"github.com/areflesh/text-annot/internal/adapters/driving/tui/styles"
	"github.com/areflesh/text-annot/internal/adapters/driving/tui/views/annotate"
	"github.com/areflesh/text-annot/internal/adapters/driving/tui/views/export"
	"github.com/areflesh/text-annot/internal/adapters/driving/tui/views/help"
	"github.com/areflesh/text-annot/internal/adapters/driving/tui/views/jump"
	"github.com/areflesh/text-annot/internal/adapters/driving/tui/views/menu"
	"github.com/areflesh/text-annot/internal/adapters/driving/tui/views/open"
	"github.com/areflesh/text-annot/internal/adapters/driving/tui/views/settings"
	"github.com/areflesh/text-annot/internal/core/domain"
	"github.com/areflesh/text-annot/internal/core/ports/driving"
	"github.com/areflesh/text-annot/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	menuView     *menu.View
	openView     *open.View
	annotateView *annotate.View
	jumpView     *jump.View
	exportView   *export.View
	helpView     *help.View
	settingsView *settings.View

	// session is the open document, nil until a file is opened.
	session driving.Session

	// file is opened on Init when set.
	file string

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		menuView:     menu.NewView(s),
		openView:     open.NewView(s, ports.Sessions),
		annotateView: annotate.NewView(s, km),
		jumpView:     jump.NewView(s),
		exportView:   export.NewView(s, km, ""),
		helpView:     help.NewView(s, km),
		settingsView: settings.NewView(s, ports.Settings),
		currentView:  messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.openView.WithContext(ctx)
	a.annotateView.WithContext(ctx)
	return a
}

// WithFile opens path as soon as the program starts.
func (a *App) WithFile(path string) *App {
	a.file = path
	a.openView.SetPath(path)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tea.SetWindowTitle("textannot"),
		a.loadSettings(),
	}
	if a.file != "" {
		a.currentView = messages.ViewOpen
		cmds = append(cmds, a.openView.Open(a.file))
	}
	return tea.Batch(cmds...)
}

// loadSettings reads the TUI preferences.
func (a *App) loadSettings() tea.Cmd {
	svc := a.ports.Settings
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		s, err := svc.Get()
		return messages.SettingsLoaded{Settings: s, Err: err}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a, a.forward(msg)

	case messages.ViewChanged:
		return a, a.switchTo(msg.View)

	case messages.SessionOpened:
		return a, a.handleSessionOpened(msg)

	case messages.PositionChanged:
		a.annotateView.Refresh()
		a.currentView = messages.ViewAnnotate
		return a, a.annotateView.Init()

	case messages.AnnotationSaved:
		if msg.Err != nil {
			a.err = msg.Err
		}
		a.annotateView, cmd = a.annotateView.Update(msg)
		return a, cmd

	case messages.ExportWritten:
		if msg.Err != nil {
			a.err = msg.Err
		}
		a.exportView, cmd = a.exportView.Update(msg)
		return a, cmd

	case messages.SettingsLoaded:
		if msg.Err == nil && msg.Settings != nil {
			a.applySettings(msg.Settings)
		} else if msg.Err != nil {
			logger.Warn("loading settings: %v", msg.Err)
		}
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		if a.currentView == messages.ViewAnnotate {
			a.annotateView, cmd = a.annotateView.Update(msg)
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	return a, a.forward(msg)
}

// forward passes msg to the active view.
func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewOpen:
		a.openView, cmd = a.openView.Update(msg)
	case messages.ViewAnnotate:
		a.annotateView, cmd = a.annotateView.Update(msg)
	case messages.ViewJump:
		a.jumpView, cmd = a.jumpView.Update(msg)
	case messages.ViewExport:
		a.exportView, cmd = a.exportView.Update(msg)
	case messages.ViewHelp:
		a.helpView, cmd = a.helpView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	}
	return cmd
}

// switchTo activates view, initialising it where needed.
func (a *App) switchTo(view messages.ViewType) tea.Cmd {
	needsSession := view == messages.ViewAnnotate || view == messages.ViewJump || view == messages.ViewExport
	if needsSession && a.session == nil {
		a.menuView.SetNotice("No file is open. Choose \"Open file\" first.")
		a.currentView = messages.ViewMenu
		return nil
	}

	previous := a.currentView
	a.currentView = view

	switch view {
	case messages.ViewOpen:
		a.openView.Reset()
		return a.openView.Init()
	case messages.ViewAnnotate:
		a.annotateView.Refresh()
		return a.annotateView.Init()
	case messages.ViewJump:
		a.jumpView.Reset()
		return a.jumpView.Init()
	case messages.ViewExport:
		return a.exportView.Init()
	case messages.ViewHelp:
		a.helpView.SetReturnView(previous)
		return a.helpView.Init()
	case messages.ViewSettings:
		a.settingsView.Reset()
		return a.settingsView.Init()
	case messages.ViewMenu:
		// Menu needs no initialisation
	}
	return nil
}

func (a *App) handleSessionOpened(msg messages.SessionOpened) tea.Cmd {
	if msg.Session == nil {
		a.err = msg.Err
		a.currentView = messages.ViewOpen
		var cmd tea.Cmd
		a.openView, cmd = a.openView.Update(msg)
		return tea.Batch(cmd, a.openView.Init())
	}

	a.err = msg.Err
	a.session = msg.Session
	a.annotateView.SetSession(msg.Session)
	a.jumpView.SetSession(msg.Session)
	a.exportView.SetSession(msg.Session)
	a.menuView.SetFile(msg.Session.Document().Filename)
	a.menuView.SetNotice("")
	a.openView.Update(msg)

	bar := a.annotateView.StatusBar()
	if errors.Is(msg.Err, domain.ErrLoad) {
		bar.SetState(status.StateWarning)
		bar.SetMessage(fmt.Sprintf("Existing annotations could not be read; starting empty (%s)", msg.Session.StorePath()))
	} else {
		bar.SetMessage(fmt.Sprintf("Opened %s", msg.Session.Document().Filename))
	}

	a.currentView = messages.ViewAnnotate
	return a.annotateView.Init()
}

func (a *App) applySettings(s *domain.AppSettings) {
	a.annotateView.SetShowCaption(s.TUI.ShowCaption)
	a.exportView.SetIndent(s.Export.Indent)
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewMenu:
		return a.menuView.View()
	case messages.ViewOpen:
		return a.openView.View()
	case messages.ViewAnnotate:
		return a.annotateView.View()
	case messages.ViewJump:
		return a.jumpView.View()
	case messages.ViewExport:
		return a.exportView.View()
	case messages.ViewHelp:
		return a.helpView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	default:
		return a.menuView.View()
	}
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Session returns the open session, or nil.
func (a *App) Session() driving.Session {
	return a.session
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.openView.SetDimensions(width, height)
	a.annotateView.SetDimensions(width, height)
	a.jumpView.SetDimensions(width, height)
	a.exportView.SetDimensions(width, height)
	a.helpView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
}
