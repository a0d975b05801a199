// Package tui provides an interactive terminal user interface for textannot.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/areflesh/text-annot/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Sessions opens uploaded text files for annotation.
	Sessions driving.SessionOpener

	// Settings manages application settings. Optional.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(sessions driving.SessionOpener, settings driving.SettingsService) *Ports {
	return &Ports{
		Sessions: sessions,
		Settings: settings,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Sessions == nil {
		return ErrMissingSessionOpener
	}
	return nil
}
