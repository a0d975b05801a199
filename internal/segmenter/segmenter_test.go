package segmenter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/areflesh/text-annot/internal/core/domain"
)

func sentenceTexts(sentences []domain.Sentence) []string {
	texts := make([]string, len(sentences))
	for i, s := range sentences {
		texts[i] = s.Text
	}
	return texts
}

func TestNew_Defaults(t *testing.T) {
	s := New()

	require.NotNil(t, s)
	assert.Equal(t, ".!?", s.Terminators())
}

func TestNew_WithTerminators(t *testing.T) {
	s := New(WithTerminators(".;"))
	assert.Equal(t, ".;", s.Terminators())

	s = New(WithTerminators(""))
	assert.Equal(t, domain.DefaultTerminators, s.Terminators())
}

func TestSplitCaptions_OnePerNonBlankLine(t *testing.T) {
	s := New()
	text := "first line\n\n   \nsecond line\r\n\tthird line  \n"

	captions, err := s.SplitCaptions(text)

	require.NoError(t, err)
	require.Len(t, captions, 3)
	assert.Equal(t, "first line", captions[0].Text)
	assert.Equal(t, "second line", captions[1].Text)
	assert.Equal(t, "third line", captions[2].Text)
	for i, c := range captions {
		assert.Equal(t, i, c.Index)
	}
}

func TestSplitCaptions_CountMatchesNonBlankLines(t *testing.T) {
	s := New()
	lines := []string{"a", "", "b. c", " ", "d!", "e?", "", "f"}

	captions, err := s.SplitCaptions(strings.Join(lines, "\n"))

	require.NoError(t, err)
	nonBlank := 0
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			nonBlank++
		}
	}
	assert.Len(t, captions, nonBlank)
	assert.Equal(t, "b. c", captions[1].Text)
}

func TestSplitCaptions_KeepsInnerWhitespace(t *testing.T) {
	s := New()

	captions, err := s.SplitCaptions("  a   wide\tcaption  ")

	require.NoError(t, err)
	assert.Equal(t, "a   wide\tcaption", captions[0].Text)
}

func TestSplitCaptions_Empty(t *testing.T) {
	s := New()

	for _, text := range []string{"", "\n\n", "   \n\t\n"} {
		captions, err := s.SplitCaptions(text)
		assert.ErrorIs(t, err, domain.ErrEmptyInput)
		assert.Nil(t, captions)
	}
}

func TestSplitCaptions_InvalidUTF8(t *testing.T) {
	s := New()

	_, err := s.SplitCaptions("ok\n\xff\xfe bad")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSplitCaptions_ByteOrderMark(t *testing.T) {
	s := New()

	captions, err := s.SplitCaptions("\uFEFFA cat.\nA dog.")

	require.NoError(t, err)
	assert.Equal(t, "A cat.", captions[0].Text)
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name     string
		caption  string
		expected []string
	}{
		{
			name:     "two sentences",
			caption:  "A cat sleeps. It dreams.",
			expected: []string{"A cat sleeps.", "It dreams."},
		},
		{
			name:     "all terminators",
			caption:  "Stop! Why? Because.",
			expected: []string{"Stop!", "Why?", "Because."},
		},
		{
			name:     "no terminal punctuation",
			caption:  "  a caption without an end  ",
			expected: []string{"a caption without an end"},
		},
		{
			name:     "terminator without whitespace does not split",
			caption:  "Version 1.5 is out.Really",
			expected: []string{"Version 1.5 is out.Really"},
		},
		{
			name:     "consecutive punctuation is one boundary",
			caption:  "What?! No way.",
			expected: []string{"What?!", "No way."},
		},
		{
			name:     "multiple whitespace discarded",
			caption:  "One.   \t Two.",
			expected: []string{"One.", "Two."},
		},
		{
			name:     "abbreviations split",
			caption:  "Mr. Smith walks.",
			expected: []string{"Mr.", "Smith walks."},
		},
		{
			name:     "trailing whitespace after last sentence",
			caption:  "Done. ",
			expected: []string{"Done."},
		},
		{
			name:     "non-breaking space counts as whitespace",
			caption:  "One.\u00a0Two.",
			expected: []string{"One.", "Two."},
		},
	}

	s := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sentences := s.SplitSentences(tt.caption)
			assert.Equal(t, tt.expected, sentenceTexts(sentences))
			for i, sent := range sentences {
				assert.Equal(t, i, sent.Index)
			}
		})
	}
}

func TestSplitSentences_Blank(t *testing.T) {
	s := New()

	assert.Empty(t, s.SplitSentences(""))
	assert.Empty(t, s.SplitSentences("   "))
}

func TestSplitSentences_Idempotent(t *testing.T) {
	s := New()
	inputs := []string{
		"A cat sleeps. It dreams. A dog runs!",
		"What?! No way. Mr. Smith walks.",
		"single sentence",
	}

	for _, in := range inputs {
		for _, sent := range s.SplitSentences(in) {
			again := s.SplitSentences(sent.Text)
			require.Len(t, again, 1)
			assert.Equal(t, sent.Text, again[0].Text)
		}
	}
}

func TestSplitSentences_CustomTerminators(t *testing.T) {
	s := New(WithTerminators(".;"))

	assert.Equal(t, []string{"one;", "two.", "three! four"}, sentenceTexts(s.SplitSentences("one; two. three! four")))
}

func TestSplitSentences_RegexMetaTerminators(t *testing.T) {
	s := New(WithTerminators("|-"))

	assert.Equal(t, []string{"a|", "b-", "c"}, sentenceTexts(s.SplitSentences("a| b- c")))
}

func TestSegment_Scenario(t *testing.T) {
	s := New()

	doc, err := s.Segment("captions.txt", "A cat sleeps. It dreams.\nA dog runs.")

	require.NoError(t, err)
	assert.Equal(t, "captions.txt", doc.Filename)
	require.Equal(t, 2, doc.CaptionCount())
	assert.Equal(t, []string{"A cat sleeps.", "It dreams."}, sentenceTexts(doc.Captions[0].Sentences))
	assert.Equal(t, []string{"A dog runs."}, sentenceTexts(doc.Captions[1].Sentences))
	assert.Equal(t, 3, doc.SentenceCount())
}

func TestSegment_Empty(t *testing.T) {
	s := New()

	doc, err := s.Segment("empty.txt", "\n \n")

	assert.ErrorIs(t, err, domain.ErrEmptyInput)
	assert.Nil(t, doc)
}
