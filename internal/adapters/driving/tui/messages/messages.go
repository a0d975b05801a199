// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/areflesh/text-annot/internal/core/domain"
	"github.com/areflesh/text-annot/internal/core/ports/driving"
)

// SessionOpened carries a freshly opened session back to the model.
// Session may be non-nil together with Err when the file was segmented
// but its annotations could not be loaded.
type SessionOpened struct {
	Path    string
	Session driving.Session
	Err     error
}

// AnnotationSaved signals the result of saving the current sentence.
// Annotation is set even when Err wraps domain.ErrSave.
type AnnotationSaved struct {
	Annotation *domain.Annotation
	Err        error
}

// PositionChanged signals the cursor moved to a new sentence.
type PositionChanged struct {
	Key domain.Key
}

// ExportWritten signals the export JSON was written to disk.
type ExportWritten struct {
	Path  string
	Count int
	Err   error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewOpen asks for the path of a text file.
	ViewOpen
	// ViewAnnotate is the sentence annotation form.
	ViewAnnotate
	// ViewJump asks for a caption number.
	ViewJump
	// ViewExport shows the export table and summary.
	ViewExport
	// ViewHelp is the help/keybindings view.
	ViewHelp
	// ViewSettings is the settings configuration view.
	ViewSettings
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewOpen:
		return "open"
	case ViewAnnotate:
		return "annotate"
	case ViewJump:
		return "jump"
	case ViewExport:
		return "export"
	case ViewHelp:
		return "help"
	case ViewSettings:
		return "settings"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved signals a setting was written.
type SettingsSaved struct {
	Key string
	Err error
}
