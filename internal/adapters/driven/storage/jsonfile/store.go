package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/areflesh/text-annot/internal/core/domain"
	"github.com/areflesh/text-annot/internal/core/ports/driven"
	"github.com/areflesh/text-annot/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.AnnotationStore = (*Store)(nil)

// timestampLayouts are tried in order when decoding timestamps.
// Older tools wrote local ISO-8601 times without a zone offset.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
}

// Store is a filesystem implementation of driven.AnnotationStore.
type Store struct {
	dir  string
	path string
	now  func() time.Time
}

// NewStore creates a JSON store from store settings.
// With settings.Path set, every filename shares that single document;
// otherwise each filename gets "<dir>/<filename>.json".
func NewStore(settings domain.StoreSettings) *Store {
	dir := settings.Dir
	if dir == "" {
		dir = domain.DefaultStoreDir
	}
	return &Store{
		dir:  dir,
		path: settings.Path,
		now:  time.Now,
	}
}

// Path returns the document location for filename.
func (s *Store) Path(filename string) string {
	if s.path != "" {
		return s.path
	}
	return filepath.Join(s.dir, documentName(filename))
}

func documentName(filename string) string {
	base := filepath.Base(filename)
	if base == "." || base == string(filepath.Separator) {
		base = "document"
	}
	return base + ".json"
}

// Load reads and validates the document for filename.
func (s *Store) Load(ctx context.Context, filename string) (*domain.AnnotationFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := s.Path(filename)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: reading %s: %w", domain.ErrLoad, path, err)
	}

	var raw fileDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %w", domain.ErrLoad, path, err)
	}

	file, err := raw.toDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrLoad, path, err)
	}

	logger.Debug("Loaded %d annotations from %s", len(file.Annotations), path)
	return file, nil
}

// Save writes the document to a temporary file and renames it into place,
// so a reader never observes a partial write.
func (s *Store) Save(ctx context.Context, file *domain.AnnotationFile) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := s.Path(file.Filename)
	stamp := s.now()

	data, err := json.MarshalIndent(fromDomain(file, stamp), "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding: %w", domain.ErrSave, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: creating %s: %w", domain.ErrSave, dir, err)
	}

	if err := writeAtomic(dir, path, data); err != nil {
		return fmt.Errorf("%w: writing %s: %w", domain.ErrSave, path, err)
	}

	file.LastUpdated = stamp
	logger.Debug("Saved %d annotations to %s", len(file.Annotations), path)
	return nil
}

func writeAtomic(dir, path string, data []byte) error {
	tmp, err := os.CreateTemp(dir, ".annotations-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

func parseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}
