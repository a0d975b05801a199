package domain

import (
	"strings"
	"time"
)

// Triple is the Subject-Predicate-Object input for one sentence.
type Triple struct {
	Subject   string `json:"subject" validate:"required"`
	Predicate string `json:"predicate" validate:"required"`
	Object    string `json:"object" validate:"required"`
}

// Trimmed returns a copy with surrounding whitespace removed from each field.
func (t Triple) Trimmed() Triple {
	return Triple{
		Subject:   strings.TrimSpace(t.Subject),
		Predicate: strings.TrimSpace(t.Predicate),
		Object:    strings.TrimSpace(t.Object),
	}
}

// IsZero reports whether all three fields are empty.
func (t Triple) IsZero() bool {
	return t == Triple{}
}

// Annotation is a triple attached to one sentence.
type Annotation struct {
	CaptionIndex  int       `json:"caption_index"`
	SentenceIndex int       `json:"sentence_index"`
	Caption       string    `json:"caption"`
	Sentence      string    `json:"sentence"`
	Subject       string    `json:"subject"`
	Predicate     string    `json:"predicate"`
	Object        string    `json:"object"`
	Timestamp     time.Time `json:"timestamp"`
}

// Key returns the composite key of the annotated sentence.
func (a *Annotation) Key() Key {
	return Key{Caption: a.CaptionIndex, Sentence: a.SentenceIndex}
}

// Triple returns the annotation's Subject-Predicate-Object values.
func (a *Annotation) Triple() Triple {
	return Triple{Subject: a.Subject, Predicate: a.Predicate, Object: a.Object}
}

// AnnotationFile is the persisted annotation document for one upload.
type AnnotationFile struct {
	// Filename is the upload the annotations belong to.
	Filename string

	// Annotations maps sentence keys to their annotation.
	Annotations map[Key]Annotation

	// LastUpdated is the time of the last successful save.
	LastUpdated time.Time
}

// NewAnnotationFile returns an empty document for filename.
func NewAnnotationFile(filename string) *AnnotationFile {
	return &AnnotationFile{
		Filename:    filename,
		Annotations: make(map[Key]Annotation),
	}
}

// Progress is the annotated/total sentence count for a document.
type Progress struct {
	Annotated int `json:"annotated"`
	Total     int `json:"total"`
}

// Ratio returns Annotated/Total, or 0 for an empty document.
func (p Progress) Ratio() float64 {
	if p.Total <= 0 {
		return 0
	}
	return float64(p.Annotated) / float64(p.Total)
}

// Percent returns the truncated integer percentage.
func (p Progress) Percent() int {
	if p.Total <= 0 {
		return 0
	}
	return p.Annotated * 100 / p.Total
}

// Complete reports whether every sentence is annotated.
func (p Progress) Complete() bool {
	return p.Total > 0 && p.Annotated >= p.Total
}

// SentenceView is what a UI needs to render the sentence under the cursor.
type SentenceView struct {
	Key Key

	// CaptionCount is the number of captions in the document.
	CaptionCount int

	// SentenceCount is the number of sentences in the current caption.
	SentenceCount int

	Caption  Caption
	Sentence Sentence

	// Annotation is the saved annotation for Key, or nil.
	Annotation *Annotation
}

// Annotated reports whether the sentence already has a saved annotation.
func (v SentenceView) Annotated() bool {
	return v.Annotation != nil
}
