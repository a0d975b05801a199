package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// Export is the downloadable summary of a document's annotations.
type Export struct {
	ExportID           string             `json:"export_id"`
	Filename           string             `json:"filename"`
	TotalCaptions      int                `json:"total_captions"`
	TotalSentences     int                `json:"total_sentences"`
	AnnotatedSentences int                `json:"annotated_sentences"`
	Annotations        map[Key]Annotation `json:"annotations"`
	ExportedAt         time.Time          `json:"exported_at"`
}

// ExportRow is one line of the tabular export view.
// Indices are 0-based; renderers add 1 for display.
type ExportRow struct {
	CaptionIndex  int    `json:"caption_index"`
	SentenceIndex int    `json:"sentence_index"`
	Caption       string `json:"caption"`
	Sentence      string `json:"sentence"`
	Subject       string `json:"subject"`
	Predicate     string `json:"predicate"`
	Object        string `json:"object"`
}

// Rows returns the export as table rows sorted by (caption, sentence).
func (e *Export) Rows() []ExportRow {
	keys := make([]Key, 0, len(e.Annotations))
	for k := range e.Annotations {
		keys = append(keys, k)
	}
	SortKeys(keys)

	rows := make([]ExportRow, 0, len(keys))
	for _, k := range keys {
		a := e.Annotations[k]
		rows = append(rows, ExportRow{
			CaptionIndex:  k.Caption,
			SentenceIndex: k.Sentence,
			Caption:       a.Caption,
			Sentence:      a.Sentence,
			Subject:       a.Subject,
			Predicate:     a.Predicate,
			Object:        a.Object,
		})
	}
	return rows
}

// ExportFileName returns the default download name for an export of
// filename: "annotations_<stem>.json", where stem is everything before the
// first dot.
func ExportFileName(filename string) string {
	stem, _, _ := strings.Cut(filepath.Base(filename), ".")
	if stem == "" || stem == string(filepath.Separator) {
		stem = "document"
	}
	return "annotations_" + stem + ".json"
}
