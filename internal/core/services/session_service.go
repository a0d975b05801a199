package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/areflesh/text-annot/internal/core/ports/driven"
	"github.com/areflesh/text-annot/internal/core/ports/driving"
	"github.com/areflesh/text-annot/internal/logger"
)

// Ensure SessionService implements the interface.
var _ driving.SessionOpener = (*SessionService)(nil)

// SessionService opens annotation sessions.
type SessionService struct {
	segmenter driven.Segmenter
	store     driven.AnnotationStore
}

// NewSessionService creates a session service.
func NewSessionService(segmenter driven.Segmenter, store driven.AnnotationStore) *SessionService {
	return &SessionService{
		segmenter: segmenter,
		store:     store,
	}
}

// Open segments content and loads the annotations stored for filename.
// If the annotations cannot be loaded the session is still returned, empty,
// alongside an error wrapping domain.ErrLoad.
func (s *SessionService) Open(ctx context.Context, filename string, content []byte) (driving.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := s.segmenter.Segment(filename, string(content))
	if err != nil {
		return nil, fmt.Errorf("segment %s: %w", filename, err)
	}

	annotations := NewAnnotationService(s.store, filename)
	session := NewSession(doc, annotations)

	if _, err := annotations.Load(ctx); err != nil {
		logger.Warn("loading annotations for %s: %v", filename, err)
		return session, err
	}
	annotations.Backfill(doc)

	logger.Debug("Opened %s: %d captions, %d sentences, %d annotations",
		filename, doc.CaptionCount(), doc.SentenceCount(), annotations.Len())
	return session, nil
}

// OpenFile reads path and opens it under its base name.
func (s *SessionService) OpenFile(ctx context.Context, path string) (driving.Session, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return s.Open(ctx, filepath.Base(path), content)
}
