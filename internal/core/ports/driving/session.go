package driving

import (
	"context"

	"github.com/areflesh/text-annot/internal/core/domain"
)

// SessionOpener creates annotation sessions from uploaded text.
type SessionOpener interface {
	// Open segments content and loads any existing annotations for filename.
	// When the annotation document cannot be loaded, a usable session with
	// an empty store is returned together with an error wrapping
	// domain.ErrLoad.
	Open(ctx context.Context, filename string, content []byte) (Session, error)

	// OpenFile reads path from disk and opens it under its base name.
	OpenFile(ctx context.Context, path string) (Session, error)
}

// Session is one annotator's work over one document.
// Navigation methods clear the pending draft.
type Session interface {
	// Document returns the segmented document.
	Document() *domain.Document

	// Position returns the cursor position.
	Position() domain.Key

	// Current returns the sentence under the cursor.
	Current() domain.SentenceView

	// Draft returns the pending, unsaved form input.
	Draft() domain.Triple

	// SetDraft replaces the pending form input.
	SetDraft(t domain.Triple)

	// EditSaved copies the saved annotation at the cursor into the draft.
	// Returns false when the current sentence has no annotation.
	EditSaved() bool

	// Next moves to the following sentence. Returns false at the end.
	Next() bool

	// Prev moves to the preceding sentence. Returns false at the start.
	Prev() bool

	// JumpToCaption moves to the first sentence of a caption.
	// Returns domain.ErrOutOfRange for an invalid index.
	JumpToCaption(caption int) error

	// MoveTo moves to an exact sentence.
	// Returns domain.ErrOutOfRange for an invalid key.
	MoveTo(k domain.Key) error

	// NextUnannotated moves forward to the first unannotated sentence after
	// the cursor. Returns false, without moving, when none remains.
	NextUnannotated() (domain.Key, bool)

	// Save validates and stores t for the sentence under the cursor, then
	// persists. The draft is cleared on success.
	Save(ctx context.Context, t domain.Triple) (*domain.Annotation, error)

	// Annotation returns the saved annotation for k.
	Annotation(k domain.Key) (domain.Annotation, bool)

	// IsAnnotated reports whether k has a saved annotation.
	IsAnnotated(k domain.Key) bool

	// Progress returns annotated and total sentence counts.
	Progress() domain.Progress

	// Export builds the export summary of the document's annotations.
	Export() *domain.Export

	// ExportRows returns the export as rows in document order.
	ExportRows() []domain.ExportRow

	// Reload re-reads the annotation document from disk.
	Reload(ctx context.Context) error

	// StorePath returns where annotations for this document are persisted.
	StorePath() string
}
