package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/areflesh/text-annot/internal/core/domain"
	"github.com/areflesh/text-annot/internal/core/ports/driven"
)

// Ensure AnnotationStore implements the interface.
var _ driven.AnnotationStore = (*AnnotationStore)(nil)

// AnnotationStore is an in-memory implementation of driven.AnnotationStore.
// Documents are copied on the way in and out.
type AnnotationStore struct {
	mu    sync.RWMutex
	files map[string]*domain.AnnotationFile

	// SaveErr, when set, is returned by Save instead of storing.
	SaveErr error

	// LoadErr, when set, is returned by Load.
	LoadErr error

	saves int
}

// NewAnnotationStore creates an empty in-memory annotation store.
func NewAnnotationStore() *AnnotationStore {
	return &AnnotationStore{
		files: make(map[string]*domain.AnnotationFile),
	}
}

// Load returns a copy of the stored document for filename.
func (s *AnnotationStore) Load(ctx context.Context, filename string) (*domain.AnnotationFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.LoadErr != nil {
		return nil, s.LoadErr
	}

	file, ok := s.files[filename]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, s.Path(filename))
	}
	return copyFile(file), nil
}

// Save stores a copy of file.
func (s *AnnotationStore) Save(ctx context.Context, file *domain.AnnotationFile) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.SaveErr != nil {
		return s.SaveErr
	}

	s.files[file.Filename] = copyFile(file)
	s.saves++
	return nil
}

// Path returns a pseudo path for filename.
func (s *AnnotationStore) Path(filename string) string {
	return ":memory:" + filename
}

// Put seeds the store directly, bypassing SaveErr.
func (s *AnnotationStore) Put(file *domain.AnnotationFile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[file.Filename] = copyFile(file)
}

// Saves returns the number of successful saves.
func (s *AnnotationStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

func copyFile(file *domain.AnnotationFile) *domain.AnnotationFile {
	cp := &domain.AnnotationFile{
		Filename:    file.Filename,
		Annotations: make(map[domain.Key]domain.Annotation, len(file.Annotations)),
		LastUpdated: file.LastUpdated,
	}
	for k, a := range file.Annotations {
		cp.Annotations[k] = a
	}
	return cp
}
