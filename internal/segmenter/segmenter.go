// Package segmenter splits uploaded caption text into captions and sentences.
//
// A caption is one non-blank line. A sentence boundary is a terminator
// (by default '.', '!' or '?') immediately followed by whitespace; the
// terminator stays with the preceding sentence. Abbreviations such as
// "Mr. Smith" are not special-cased and split like any other boundary.
package segmenter

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/areflesh/text-annot/internal/core/domain"
	"github.com/areflesh/text-annot/internal/core/ports/driven"
	"github.com/areflesh/text-annot/internal/logger"
)

// Ensure Segmenter implements the interface.
var _ driven.Segmenter = (*Segmenter)(nil)

const byteOrderMark = "\uFEFF"

// Segmenter splits text using a fixed terminator set.
// It holds no mutable state and is safe to reuse.
type Segmenter struct {
	terminators string
	boundary    *regexp.Regexp
}

// Option configures the segmenter.
type Option func(*Segmenter)

// WithTerminators sets the sentence-ending marks, one rune each.
// An empty set keeps the default.
func WithTerminators(terminators string) Option {
	return func(s *Segmenter) {
		if terminators != "" {
			s.terminators = terminators
		}
	}
}

// New creates a segmenter with the given options.
func New(opts ...Option) *Segmenter {
	s := &Segmenter{
		terminators: domain.DefaultTerminators,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.boundary = boundaryPattern(s.terminators)
	return s
}

// boundaryPattern matches one terminator (captured) followed by whitespace.
func boundaryPattern(terminators string) *regexp.Regexp {
	seen := make(map[rune]bool)
	alternatives := make([]string, 0, len(terminators))
	for _, r := range terminators {
		if seen[r] || r == utf8.RuneError {
			continue
		}
		seen[r] = true
		alternatives = append(alternatives, regexp.QuoteMeta(string(r)))
	}
	if len(alternatives) == 0 {
		return boundaryPattern(domain.DefaultTerminators)
	}
	return regexp.MustCompile(`(` + strings.Join(alternatives, "|") + `)[\s\p{Z}]+`)
}

// Terminators returns the sentence-ending marks in use.
func (s *Segmenter) Terminators() string {
	return s.terminators
}

// SplitCaptions returns one caption per non-blank line, each already split
// into sentences. Lines are trimmed at both ends; their inner text is kept.
func (s *Segmenter) SplitCaptions(text string) ([]domain.Caption, error) {
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("%w: text is not valid UTF-8", domain.ErrInvalidInput)
	}
	text = strings.TrimPrefix(text, byteOrderMark)

	var captions []domain.Caption
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		captions = append(captions, domain.Caption{
			Index:     len(captions),
			Text:      line,
			Sentences: s.SplitSentences(line),
		})
	}

	if len(captions) == 0 {
		return nil, domain.ErrEmptyInput
	}
	return captions, nil
}

// SplitSentences splits a caption at terminator-plus-whitespace boundaries.
// Pieces are trimmed and empty pieces dropped, so a caption without a
// boundary yields exactly one sentence.
func (s *Segmenter) SplitSentences(caption string) []domain.Sentence {
	var pieces []string
	start := 0
	for _, m := range s.boundary.FindAllStringSubmatchIndex(caption, -1) {
		// m[3] ends the captured terminator, m[1] ends the whitespace run.
		pieces = append(pieces, caption[start:m[3]])
		start = m[1]
	}
	pieces = append(pieces, caption[start:])

	sentences := make([]domain.Sentence, 0, len(pieces))
	for _, p := range pieces {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		sentences = append(sentences, domain.Sentence{
			Index: len(sentences),
			Text:  p,
		})
	}
	return sentences
}

// Segment builds the document for an upload.
func (s *Segmenter) Segment(filename, text string) (*domain.Document, error) {
	captions, err := s.SplitCaptions(text)
	if err != nil {
		return nil, err
	}

	doc := &domain.Document{
		Filename: filename,
		Captions: captions,
	}
	logger.Debug("Segmented %q: %d captions, %d sentences", filename, doc.CaptionCount(), doc.SentenceCount())
	return doc, nil
}
