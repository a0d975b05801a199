package domain

import "errors"

// Domain errors represent business logic failures.
// All of them are recoverable: a session stays usable after any of them.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyInput indicates an upload contained no usable captions.
	ErrEmptyInput = errors.New("no captions found in input")

	// ErrLoad indicates the persisted annotation document could not be read
	// or decoded. The in-memory store starts empty.
	ErrLoad = errors.New("loading annotations failed")

	// ErrSave indicates the annotation document could not be written.
	// In-memory state is retained; only durability is lost.
	ErrSave = errors.New("saving annotations failed")

	// ErrValidation indicates an annotation is missing a required field.
	ErrValidation = errors.New("incomplete annotation")

	// ErrOutOfRange indicates a navigation target outside the document.
	ErrOutOfRange = errors.New("position out of range")
)
