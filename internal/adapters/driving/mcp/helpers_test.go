package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/areflesh/text-annot/internal/adapters/driven/storage/memory"
	"github.com/areflesh/text-annot/internal/core/ports/driving"
	"github.com/areflesh/text-annot/internal/core/services"
	"github.com/areflesh/text-annot/internal/segmenter"
)

const captionsText = "A cat sleeps. It dreams.\nA dog runs."

// newTestServer opens captionsText over an in-memory store.
func newTestServer(t *testing.T) (*Server, driving.Session, *memory.AnnotationStore) {
	t.Helper()

	store := memory.NewAnnotationStore()
	opener := services.NewSessionService(segmenter.New(), store)
	session, err := opener.Open(context.Background(), "captions.txt", []byte(captionsText))
	require.NoError(t, err)

	server, err := NewServer(&Ports{Session: session})
	require.NoError(t, err)
	return server, session, store
}

// makeReadResourceRequest creates a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}
