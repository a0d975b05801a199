package services

import (
	"fmt"

	"github.com/areflesh/text-annot/internal/core/domain"
)

// Cursor is a (caption, sentence) position over a fixed document.
// It starts at the first sentence and never leaves the document.
type Cursor struct {
	doc *domain.Document
	pos domain.Key
}

// NewCursor returns a cursor at the first sentence of doc.
func NewCursor(doc *domain.Document) *Cursor {
	return &Cursor{doc: doc}
}

// Position returns the current key.
func (c *Cursor) Position() domain.Key {
	return c.pos
}

// Next advances one sentence, crossing into the next caption when needed.
// Returns false, without moving, at the last sentence.
func (c *Cursor) Next() bool {
	if c.pos.Sentence+1 < c.doc.SentencesIn(c.pos.Caption) {
		c.pos.Sentence++
		return true
	}
	if c.pos.Caption+1 < c.doc.CaptionCount() {
		c.pos = domain.NewKey(c.pos.Caption+1, 0)
		return true
	}
	return false
}

// Prev steps back one sentence. Stepping back across a caption lands on
// that caption's last sentence. Returns false, without moving, at the first
// sentence.
func (c *Cursor) Prev() bool {
	if c.pos.Sentence > 0 {
		c.pos.Sentence--
		return true
	}
	if c.pos.Caption > 0 {
		prev := c.pos.Caption - 1
		c.pos = domain.NewKey(prev, c.doc.SentencesIn(prev)-1)
		return true
	}
	return false
}

// JumpToCaption moves to the first sentence of caption.
func (c *Cursor) JumpToCaption(caption int) error {
	if caption < 0 || caption >= c.doc.CaptionCount() {
		return fmt.Errorf("%w: caption %d of %d", domain.ErrOutOfRange, caption+1, c.doc.CaptionCount())
	}
	c.pos = domain.NewKey(caption, 0)
	return nil
}

// MoveTo moves to key.
func (c *Cursor) MoveTo(key domain.Key) error {
	if !c.doc.Contains(key) {
		return fmt.Errorf("%w: sentence %s", domain.ErrOutOfRange, key)
	}
	c.pos = key
	return nil
}

// NextUnannotated finds the first key strictly after the cursor for which
// annotated returns false. The scan never wraps to earlier positions and
// does not move the cursor.
func (c *Cursor) NextUnannotated(annotated func(domain.Key) bool) (domain.Key, bool) {
	for ci := c.pos.Caption; ci < c.doc.CaptionCount(); ci++ {
		start := 0
		if ci == c.pos.Caption {
			start = c.pos.Sentence + 1
		}
		for si := start; si < c.doc.SentencesIn(ci); si++ {
			k := domain.NewKey(ci, si)
			if !annotated(k) {
				return k, true
			}
		}
	}
	return domain.Key{}, false
}
