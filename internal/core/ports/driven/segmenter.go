package driven

import "github.com/areflesh/text-annot/internal/core/domain"

// Segmenter turns raw text into captions and captions into sentences.
// Implementations must be deterministic.
type Segmenter interface {
	// SplitCaptions returns one caption per non-blank line, in input order.
	// Returns domain.ErrEmptyInput when no caption remains.
	SplitCaptions(text string) ([]domain.Caption, error)

	// SplitSentences splits a caption into its sentences.
	// Always returns at least one sentence for non-blank input.
	SplitSentences(caption string) []domain.Sentence

	// Segment builds a Document from raw text.
	Segment(filename, text string) (*domain.Document, error)
}
