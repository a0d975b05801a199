// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// SessionService opens a Session per document. A Session combines a Cursor
// with an AnnotationService that writes through to the annotation store.
package services
