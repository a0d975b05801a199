package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/areflesh/text-annot/internal/core/domain"
	"github.com/areflesh/text-annot/internal/core/ports/driven"
	"github.com/areflesh/text-annot/internal/logger"
)

// AnnotationService holds the annotations of one document in memory and
// writes them through to a driven.AnnotationStore.
type AnnotationService struct {
	store    driven.AnnotationStore
	filename string
	file     *domain.AnnotationFile
	validate *validator.Validate

	// owner names the file whose document occupies the store path when it
	// is not filename. Saving is refused while it is set.
	owner string
	now      func() time.Time
}

// NewAnnotationService creates an empty annotation service for filename.
func NewAnnotationService(store driven.AnnotationStore, filename string) *AnnotationService {
	return &AnnotationService{
		store:    store,
		filename: filename,
		file:     domain.NewAnnotationFile(filename),
		validate: newTripleValidator(),
		now:      time.Now,
	}
}

func newTripleValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// Filename returns the document the annotations belong to.
func (s *AnnotationService) Filename() string {
	return s.filename
}

// Path returns where the annotations are persisted.
func (s *AnnotationService) Path() string {
	return s.store.Path(s.filename)
}

// Load replaces the in-memory annotations with the stored document.
// A missing document is not an error: found is false and the store is
// empty. On failure the store is also left empty. A document recorded for
// another filename fails with domain.ErrLoad and blocks Save until a later
// Load succeeds.
func (s *AnnotationService) Load(ctx context.Context) (bool, error) {
	s.owner = ""
	file, err := s.store.Load(ctx, s.filename)
	if err != nil {
		s.file = domain.NewAnnotationFile(s.filename)
		if errors.Is(err, domain.ErrNotFound) {
			logger.Debug("No annotations yet for %s", s.filename)
			return false, nil
		}
		if !errors.Is(err, domain.ErrLoad) {
			err = fmt.Errorf("%w: %w", domain.ErrLoad, err)
		}
		return false, err
	}

	if file.Filename != "" && file.Filename != s.filename {
		s.file = domain.NewAnnotationFile(s.filename)
		s.owner = file.Filename
		return false, fmt.Errorf("%w: %s holds annotations for %q, not %q",
			domain.ErrLoad, s.Path(), file.Filename, s.filename)
	}

	file.Filename = s.filename
	if file.Annotations == nil {
		file.Annotations = make(map[domain.Key]domain.Annotation)
	}
	s.file = file

	logger.Debug("Loaded %d annotations for %s", len(file.Annotations), s.filename)
	return true, nil
}

// Save persists every annotation.
// It refuses while the store path holds another file's document.
func (s *AnnotationService) Save(ctx context.Context) error {
	if s.owner != "" {
		return fmt.Errorf("%w: %s holds annotations for %q; not overwriting",
			domain.ErrSave, s.Path(), s.owner)
	}
	if err := s.store.Save(ctx, s.file); err != nil {
		if !errors.Is(err, domain.ErrSave) {
			err = fmt.Errorf("%w: %w", domain.ErrSave, err)
		}
		return err
	}
	return nil
}

// Upsert validates t, stores it under key and saves.
// Invalid input returns an error wrapping domain.ErrValidation and changes
// nothing. When the save fails the stored record is still returned,
// together with an error wrapping domain.ErrSave.
func (s *AnnotationService) Upsert(
	ctx context.Context, key domain.Key, caption, sentence string, t domain.Triple,
) (*domain.Annotation, error) {
	t = t.Trimmed()
	if err := s.check(t); err != nil {
		return nil, err
	}

	a := domain.Annotation{
		CaptionIndex:  key.Caption,
		SentenceIndex: key.Sentence,
		Caption:       caption,
		Sentence:      sentence,
		Subject:       t.Subject,
		Predicate:     t.Predicate,
		Object:        t.Object,
		Timestamp:     s.now(),
	}
	s.file.Annotations[key] = a

	if err := s.Save(ctx); err != nil {
		logger.Warn("annotation %s kept in memory but not saved: %v", key, err)
		return &a, err
	}

	logger.Debug("Saved annotation %s", key)
	return &a, nil
}

func (s *AnnotationService) check(t domain.Triple) error {
	err := s.validate.Struct(t)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	missing := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		missing = append(missing, fe.Field())
	}
	return fmt.Errorf("%w: missing %s", domain.ErrValidation, strings.Join(missing, ", "))
}

// Get returns the annotation stored under key.
func (s *AnnotationService) Get(key domain.Key) (domain.Annotation, bool) {
	a, ok := s.file.Annotations[key]
	return a, ok
}

// Has reports whether key has an annotation.
func (s *AnnotationService) Has(key domain.Key) bool {
	_, ok := s.file.Annotations[key]
	return ok
}

// Keys returns every stored key in document order.
func (s *AnnotationService) Keys() []domain.Key {
	keys := make([]domain.Key, 0, len(s.file.Annotations))
	for k := range s.file.Annotations {
		keys = append(keys, k)
	}
	domain.SortKeys(keys)
	return keys
}

// Len returns the number of stored annotations.
func (s *AnnotationService) Len() int {
	return len(s.file.Annotations)
}

// LastUpdated returns the time of the last successful save or load.
func (s *AnnotationService) LastUpdated() time.Time {
	return s.file.LastUpdated
}

// Progress counts stored annotations that name a sentence of doc.
func (s *AnnotationService) Progress(doc *domain.Document) domain.Progress {
	annotated := 0
	for k := range s.file.Annotations {
		if doc.Contains(k) {
			annotated++
		}
	}
	return domain.Progress{Annotated: annotated, Total: doc.SentenceCount()}
}

// Within returns a copy of the annotations that name a sentence of doc.
func (s *AnnotationService) Within(doc *domain.Document) map[domain.Key]domain.Annotation {
	out := make(map[domain.Key]domain.Annotation, len(s.file.Annotations))
	for k, a := range s.file.Annotations {
		if doc.Contains(k) {
			out[k] = a
		}
	}
	return out
}

// Backfill fills in caption and sentence text missing from records, as
// found in documents written before sentence segmentation. It does not
// save. Returns the number of records changed.
func (s *AnnotationService) Backfill(doc *domain.Document) int {
	changed := 0
	for k, a := range s.file.Annotations {
		if a.Sentence != "" && a.Caption != "" {
			continue
		}
		sentence, ok := doc.Sentence(k)
		if !ok {
			continue
		}
		caption, _ := doc.Caption(k.Caption)

		if a.Sentence == "" {
			a.Sentence = sentence.Text
		}
		if a.Caption == "" {
			a.Caption = caption.Text
		}
		s.file.Annotations[k] = a
		changed++
	}
	if changed > 0 {
		logger.Debug("Backfilled text for %d annotations", changed)
	}
	return changed
}
