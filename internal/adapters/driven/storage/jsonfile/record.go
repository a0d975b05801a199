package jsonfile

import (
	"fmt"
	"time"

	"github.com/areflesh/text-annot/internal/core/domain"
	"github.com/areflesh/text-annot/internal/logger"
)

// fileDocument is the on-disk shape of an annotation document.
type fileDocument struct {
	Filename    string                `json:"filename"`
	Annotations map[string]fileRecord `json:"annotations"`
	LastUpdated string                `json:"last_updated"`
}

// fileRecord is the on-disk shape of one annotation.
// Pointer fields are absent in legacy documents.
type fileRecord struct {
	CaptionIndex  *int    `json:"caption_index"`
	SentenceIndex *int    `json:"sentence_index,omitempty"`
	Caption       string  `json:"caption"`
	Sentence      *string `json:"sentence,omitempty"`
	Subject       string  `json:"subject"`
	Predicate     string  `json:"predicate"`
	Object        string  `json:"object"`
	Timestamp     string  `json:"timestamp"`
}

// toDomain validates the decoded document and converts it.
func (d *fileDocument) toDomain() (*domain.AnnotationFile, error) {
	file := domain.NewAnnotationFile(d.Filename)
	if t, ok := parseTimestamp(d.LastUpdated); ok {
		file.LastUpdated = t
	}

	// Composite keys win over legacy keys naming the same sentence. Two keys
	// of the same form naming one sentence are rejected.
	fromLegacy := make(map[domain.Key]bool)

	for rawKey, rec := range d.Annotations {
		key, err := domain.ParseKey(rawKey)
		if err != nil {
			return nil, err
		}
		legacy := domain.IsLegacyKey(rawKey)

		if rec.CaptionIndex != nil && *rec.CaptionIndex != key.Caption {
			return nil, fmt.Errorf("annotation %q: caption_index %d does not match key", rawKey, *rec.CaptionIndex)
		}
		if !legacy && rec.SentenceIndex != nil && *rec.SentenceIndex != key.Sentence {
			return nil, fmt.Errorf("annotation %q: sentence_index %d does not match key", rawKey, *rec.SentenceIndex)
		}

		if _, exists := file.Annotations[key]; exists {
			if fromLegacy[key] == legacy {
				return nil, fmt.Errorf("annotation %q: duplicate key", rawKey)
			}
			if legacy {
				continue
			}
		}

		a := domain.Annotation{
			CaptionIndex:  key.Caption,
			SentenceIndex: key.Sentence,
			Caption:       rec.Caption,
			Subject:       rec.Subject,
			Predicate:     rec.Predicate,
			Object:        rec.Object,
		}
		if rec.Sentence != nil {
			a.Sentence = *rec.Sentence
		}
		if t, ok := parseTimestamp(rec.Timestamp); ok {
			a.Timestamp = t
		} else if rec.Timestamp != "" {
			logger.Debug("Ignoring unparseable timestamp %q on %s", rec.Timestamp, rawKey)
		}

		file.Annotations[key] = a
		fromLegacy[key] = legacy
	}

	return file, nil
}

// fromDomain converts a document to its on-disk shape, always in the
// composite-key format.
func fromDomain(file *domain.AnnotationFile, updated time.Time) fileDocument {
	doc := fileDocument{
		Filename:    file.Filename,
		Annotations: make(map[string]fileRecord, len(file.Annotations)),
		LastUpdated: formatTimestamp(updated),
	}

	for key, a := range file.Annotations {
		captionIndex := key.Caption
		sentenceIndex := key.Sentence
		sentence := a.Sentence
		doc.Annotations[key.String()] = fileRecord{
			CaptionIndex:  &captionIndex,
			SentenceIndex: &sentenceIndex,
			Caption:       a.Caption,
			Sentence:      &sentence,
			Subject:       a.Subject,
			Predicate:     a.Predicate,
			Object:        a.Object,
			Timestamp:     formatTimestamp(a.Timestamp),
		}
	}

	return doc
}
