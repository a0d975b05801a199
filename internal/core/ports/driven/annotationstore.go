package driven

import (
	"context"

	"github.com/areflesh/text-annot/internal/core/domain"
)

// AnnotationStore persists annotation documents.
// Backed by JSON files on the local filesystem.
type AnnotationStore interface {
	// Load reads the annotation document for filename.
	// Returns domain.ErrNotFound when no document exists yet.
	// Legacy caption-only keys are normalised to (caption, 0).
	Load(ctx context.Context, filename string) (*domain.AnnotationFile, error)

	// Save writes the whole document, replacing any previous version.
	// The containing directory is created if absent.
	Save(ctx context.Context, file *domain.AnnotationFile) error

	// Path returns the location of the document for filename.
	Path(filename string) string
}
