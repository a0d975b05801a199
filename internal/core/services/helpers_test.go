package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/areflesh/text-annot/internal/core/domain"
	"github.com/areflesh/text-annot/internal/segmenter"
)

const scenarioText = "A cat sleeps. It dreams.\nA dog runs."

// segment builds a document with the default segmenter.
func segment(t *testing.T, text string) *domain.Document {
	t.Helper()
	doc, err := segmenter.New().Segment("captions.txt", text)
	require.NoError(t, err)
	return doc
}

func triple(s, p, o string) domain.Triple {
	return domain.Triple{Subject: s, Predicate: p, Object: o}
}
