package tui

import "errors"

// ErrMissingSessionOpener is returned when the session opener is not provided.
var ErrMissingSessionOpener = errors.New("tui: session opener is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
