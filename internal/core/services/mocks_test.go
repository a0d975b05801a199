package services

import (
	"context"

	"github.com/areflesh/text-annot/internal/core/domain"
	"github.com/areflesh/text-annot/internal/core/ports/driven"
)

// renamingStore serves the document stored under "to" when asked for
// "from", as a single pinned store path would.
type renamingStore struct {
	driven.AnnotationStore
	from, to string
}

func (s *renamingStore) Load(ctx context.Context, filename string) (*domain.AnnotationFile, error) {
	if filename == s.from {
		filename = s.to
	}
	return s.AnnotationStore.Load(ctx, filename)
}
