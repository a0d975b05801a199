package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/areflesh/text-annot/internal/core/domain"
	"github.com/areflesh/text-annot/internal/core/ports/driving"
)

// Ensure Session implements the interface.
var _ driving.Session = (*Session)(nil)

// Session is one annotator's work over one document: the segmented text,
// a cursor, the annotations and the pending form input.
// A Session is not safe for concurrent use.
type Session struct {
	doc         *domain.Document
	cursor      *Cursor
	annotations *AnnotationService
	draft       domain.Triple
	now         func() time.Time
}

// NewSession creates a session at the first sentence of doc.
func NewSession(doc *domain.Document, annotations *AnnotationService) *Session {
	return &Session{
		doc:         doc,
		cursor:      NewCursor(doc),
		annotations: annotations,
		now:         time.Now,
	}
}

// Document returns the segmented document.
func (s *Session) Document() *domain.Document {
	return s.doc
}

// Position returns the cursor position.
func (s *Session) Position() domain.Key {
	return s.cursor.Position()
}

// Current returns the sentence under the cursor.
func (s *Session) Current() domain.SentenceView {
	pos := s.cursor.Position()
	caption, _ := s.doc.Caption(pos.Caption)
	sentence, _ := s.doc.Sentence(pos)

	view := domain.SentenceView{
		Key:           pos,
		CaptionCount:  s.doc.CaptionCount(),
		SentenceCount: s.doc.SentencesIn(pos.Caption),
		Caption:       caption,
		Sentence:      sentence,
	}
	if a, ok := s.annotations.Get(pos); ok {
		view.Annotation = &a
	}
	return view
}

// Draft returns the pending form input.
func (s *Session) Draft() domain.Triple {
	return s.draft
}

// SetDraft replaces the pending form input.
func (s *Session) SetDraft(t domain.Triple) {
	s.draft = t
}

// EditSaved loads the saved triple at the cursor into the draft.
func (s *Session) EditSaved() bool {
	a, ok := s.annotations.Get(s.cursor.Position())
	if !ok {
		return false
	}
	s.draft = a.Triple()
	return true
}

// Next moves to the following sentence.
func (s *Session) Next() bool {
	s.draft = domain.Triple{}
	return s.cursor.Next()
}

// Prev moves to the preceding sentence.
func (s *Session) Prev() bool {
	s.draft = domain.Triple{}
	return s.cursor.Prev()
}

// JumpToCaption moves to the first sentence of caption.
func (s *Session) JumpToCaption(caption int) error {
	s.draft = domain.Triple{}
	return s.cursor.JumpToCaption(caption)
}

// MoveTo moves to an exact sentence.
func (s *Session) MoveTo(k domain.Key) error {
	s.draft = domain.Triple{}
	return s.cursor.MoveTo(k)
}

// NextUnannotated moves to the first unannotated sentence after the cursor.
func (s *Session) NextUnannotated() (domain.Key, bool) {
	s.draft = domain.Triple{}
	k, ok := s.cursor.NextUnannotated(s.annotations.Has)
	if !ok {
		return s.cursor.Position(), false
	}
	// k comes from the document, so MoveTo cannot fail.
	_ = s.cursor.MoveTo(k)
	return k, true
}

// Save stores t for the sentence under the cursor and persists it.
// The draft is cleared only when both steps succeed.
func (s *Session) Save(ctx context.Context, t domain.Triple) (*domain.Annotation, error) {
	pos := s.cursor.Position()
	caption, _ := s.doc.Caption(pos.Caption)
	sentence, _ := s.doc.Sentence(pos)

	a, err := s.annotations.Upsert(ctx, pos, caption.Text, sentence.Text, t)
	if err != nil {
		return a, err
	}
	s.draft = domain.Triple{}
	return a, nil
}

// Annotation returns the saved annotation for k.
func (s *Session) Annotation(k domain.Key) (domain.Annotation, bool) {
	return s.annotations.Get(k)
}

// IsAnnotated reports whether k has a saved annotation.
func (s *Session) IsAnnotated(k domain.Key) bool {
	return s.annotations.Has(k)
}

// Progress returns annotated and total sentence counts.
func (s *Session) Progress() domain.Progress {
	return s.annotations.Progress(s.doc)
}

// Export builds the export summary. Annotations that do not name a
// sentence of the document are left out.
func (s *Session) Export() *domain.Export {
	within := s.annotations.Within(s.doc)
	return &domain.Export{
		ExportID:           uuid.NewString(),
		Filename:           s.doc.Filename,
		TotalCaptions:      s.doc.CaptionCount(),
		TotalSentences:     s.doc.SentenceCount(),
		AnnotatedSentences: len(within),
		Annotations:        within,
		ExportedAt:         s.now(),
	}
}

// ExportRows returns the export table in document order.
func (s *Session) ExportRows() []domain.ExportRow {
	return s.Export().Rows()
}

// Reload re-reads the annotations from the store. The cursor is kept.
func (s *Session) Reload(ctx context.Context) error {
	if _, err := s.annotations.Load(ctx); err != nil {
		return err
	}
	s.annotations.Backfill(s.doc)
	return nil
}

// StorePath returns where annotations for this document are persisted.
func (s *Session) StorePath() string {
	return s.annotations.Path()
}
