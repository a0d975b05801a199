package domain

// Sentence is a punctuation-delimited part of a caption.
type Sentence struct {
	// Index is the 0-based position within the parent caption.
	Index int `json:"index"`

	// Text is the trimmed sentence text, terminal punctuation included.
	Text string `json:"text"`
}

// Caption is one non-blank line of the uploaded text.
type Caption struct {
	// Index is the 0-based position among the document's captions.
	Index int `json:"index"`

	// Text is the line with surrounding whitespace removed.
	Text string `json:"text"`

	// Sentences holds the ordered segmentation of Text. Never empty.
	Sentences []Sentence `json:"sentences"`
}

// Document is a segmented upload. It is immutable once produced.
type Document struct {
	// Filename is the name the text was uploaded or opened under.
	Filename string `json:"filename"`

	// Captions holds the ordered captions.
	Captions []Caption `json:"captions"`
}

// CaptionCount returns the number of captions.
func (d *Document) CaptionCount() int {
	if d == nil {
		return 0
	}
	return len(d.Captions)
}

// SentenceCount returns the number of sentences across all captions.
func (d *Document) SentenceCount() int {
	if d == nil {
		return 0
	}
	total := 0
	for i := range d.Captions {
		total += len(d.Captions[i].Sentences)
	}
	return total
}

// SentencesIn returns the number of sentences in the given caption,
// or 0 if the caption does not exist.
func (d *Document) SentencesIn(caption int) int {
	if d == nil || caption < 0 || caption >= len(d.Captions) {
		return 0
	}
	return len(d.Captions[caption].Sentences)
}

// Contains reports whether k addresses a sentence of this document.
func (d *Document) Contains(k Key) bool {
	return k.Sentence >= 0 && k.Sentence < d.SentencesIn(k.Caption)
}

// Caption returns the caption at index i.
func (d *Document) Caption(i int) (Caption, bool) {
	if d == nil || i < 0 || i >= len(d.Captions) {
		return Caption{}, false
	}
	return d.Captions[i], true
}

// Sentence returns the sentence addressed by k.
func (d *Document) Sentence(k Key) (Sentence, bool) {
	if !d.Contains(k) {
		return Sentence{}, false
	}
	return d.Captions[k.Caption].Sentences[k.Sentence], true
}

// Keys returns every sentence key in document order.
func (d *Document) Keys() []Key {
	keys := make([]Key, 0, d.SentenceCount())
	if d == nil {
		return keys
	}
	for c := range d.Captions {
		for s := range d.Captions[c].Sentences {
			keys = append(keys, Key{Caption: c, Sentence: s})
		}
	}
	return keys
}
