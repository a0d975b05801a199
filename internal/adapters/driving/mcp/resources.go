package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/areflesh/text-annot/internal/core/domain"
)

// uriScheme is the custom URI scheme for textannot resources.
const uriScheme = "textannot://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "export",
		Name:        "export",
		Description: "Export summary of all annotations for the open document",
		MIMEType:    "application/json",
	}, s.handleExportResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "captions/{caption}",
		Name:        "caption",
		Description: "One caption with its sentences and their annotations",
		MIMEType:    "application/json",
	}, s.handleCaptionResource)
}

// handleExportResource returns the export document.
func (s *Server) handleExportResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	s.mu.Lock()
	export := s.ports.Session.Export()
	s.mu.Unlock()

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling export: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// sentenceInfo is one sentence in a caption resource.
type sentenceInfo struct {
	Key        string        `json:"key"`
	Text       string        `json:"text"`
	Annotation *TripleOutput `json:"annotation,omitempty"`
}

// captionInfo is the body of a caption resource.
type captionInfo struct {
	Index     int            `json:"index"`
	Text      string         `json:"text"`
	Sentences []sentenceInfo `json:"sentences"`
}

// handleCaptionResource returns one caption of the open document.
func (s *Server) handleCaptionResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	index, ok := extractCaptionIndex(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	s.mu.Lock()
	session := s.ports.Session
	caption, found := session.Document().Caption(index)
	var info captionInfo
	if found {
		info = captionInfo{
			Index:     caption.Index,
			Text:      caption.Text,
			Sentences: make([]sentenceInfo, len(caption.Sentences)),
		}
		for i, sentence := range caption.Sentences {
			k := domain.NewKey(index, i)
			info.Sentences[i] = sentenceInfo{Key: k.String(), Text: sentence.Text}
			if a, ok := session.Annotation(k); ok {
				t := toTripleOutput(a.Triple())
				info.Sentences[i].Annotation = &t
			}
		}
	}
	s.mu.Unlock()

	if !found {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling caption: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractCaptionIndex extracts the index from a URI like textannot://captions/{caption}.
func extractCaptionIndex(uri string) (int, bool) {
	const prefix = uriScheme + "captions/"

	if !strings.HasPrefix(uri, prefix) {
		return 0, false
	}

	index, err := strconv.Atoi(strings.TrimPrefix(uri, prefix))
	if err != nil || index < 0 {
		return 0, false
	}
	return index, true
}
