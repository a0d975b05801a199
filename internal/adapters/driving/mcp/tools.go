package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/areflesh/text-annot/internal/core/domain"
)

// Navigation actions accepted by the navigate tool.
const (
	ActionNext            = "next"
	ActionPrev            = "prev"
	ActionNextUnannotated = "next_unannotated"
	ActionCaption         = "caption"
	ActionKey             = "key"
)

// TripleOutput is a Subject-Predicate-Object triple.
type TripleOutput struct {
	Subject   string `json:"subject"`
	Predicate string `json:"predicate"`
	Object    string `json:"object"`
}

// SentenceOutput describes the sentence under the cursor.
type SentenceOutput struct {
	Key           string        `json:"key"`
	CaptionIndex  int           `json:"caption_index"`
	SentenceIndex int           `json:"sentence_index"`
	CaptionCount  int           `json:"caption_count"`
	SentenceCount int           `json:"sentence_count"`
	Caption       string        `json:"caption"`
	Sentence      string        `json:"sentence"`
	Annotated     bool          `json:"annotated"`
	Annotation    *TripleOutput `json:"annotation,omitempty"`
}

// CurrentSentenceInput is the input schema for the current_sentence tool.
type CurrentSentenceInput struct{}

// NavigateInput is the input schema for the navigate tool.
type NavigateInput struct {
	Action  string `json:"action" jsonschema:"one of next, prev, next_unannotated, caption or key"`
	Caption int    `json:"caption,omitempty" jsonschema:"0-based caption index for the caption action"`
	Key     string `json:"key,omitempty" jsonschema:"sentence key such as 2_1 for the key action"`
}

// NavigateOutput is the output schema for the navigate tool.
type NavigateOutput struct {
	Moved    bool           `json:"moved"`
	Message  string         `json:"message,omitempty"`
	Sentence SentenceOutput `json:"sentence"`
}

// SaveAnnotationInput is the input schema for the save_annotation tool.
type SaveAnnotationInput struct {
	Key       string `json:"key,omitempty" jsonschema:"sentence key such as 2_1; defaults to the current sentence"`
	Subject   string `json:"subject" jsonschema:"the subject of the triple"`
	Predicate string `json:"predicate" jsonschema:"the predicate of the triple"`
	Object    string `json:"object" jsonschema:"the object of the triple"`
}

// SaveAnnotationOutput is the output schema for the save_annotation tool.
type SaveAnnotationOutput struct {
	Key        string         `json:"key"`
	Persisted  bool           `json:"persisted"`
	Warning    string         `json:"warning,omitempty"`
	Annotation TripleOutput   `json:"annotation"`
	Progress   ProgressOutput `json:"progress"`
}

// ProgressInput is the input schema for the progress tool.
type ProgressInput struct{}

// ProgressOutput is the output schema for the progress tool.
type ProgressOutput struct {
	Annotated       int    `json:"annotated"`
	Total           int    `json:"total"`
	Percent         int    `json:"percent"`
	Complete        bool   `json:"complete"`
	NextUnannotated string `json:"next_unannotated,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "current_sentence",
		Description: "Return the sentence under the cursor with its caption and saved annotation",
	}, s.handleCurrentSentence)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "navigate",
		Description: "Move the cursor: next, prev, next_unannotated, caption or key",
	}, s.handleNavigate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "save_annotation",
		Description: "Save a subject-predicate-object triple for a sentence",
	}, s.handleSaveAnnotation)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "progress",
		Description: "Report annotated and total sentence counts",
	}, s.handleProgress)
}

// handleCurrentSentence handles the current_sentence tool invocation.
func (s *Server) handleCurrentSentence(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ CurrentSentenceInput,
) (*mcp.CallToolResult, SentenceOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return nil, toSentenceOutput(s.ports.Session.Current()), nil
}

// handleNavigate handles the navigate tool invocation.
func (s *Server) handleNavigate(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input NavigateInput,
) (*mcp.CallToolResult, NavigateOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.ports.Session
	output := NavigateOutput{}

	switch input.Action {
	case ActionNext:
		output.Moved = session.Next()
		if !output.Moved {
			output.Message = "already at the last sentence"
		}
	case ActionPrev:
		output.Moved = session.Prev()
		if !output.Moved {
			output.Message = "already at the first sentence"
		}
	case ActionNextUnannotated:
		_, output.Moved = session.NextUnannotated()
		if !output.Moved {
			output.Message = "no unannotated sentence after the cursor"
		}
	case ActionCaption:
		if err := session.JumpToCaption(input.Caption); err != nil {
			return nil, NavigateOutput{}, err
		}
		output.Moved = true
	case ActionKey:
		k, err := domain.ParseKey(input.Key)
		if err != nil {
			return nil, NavigateOutput{}, err
		}
		if err := session.MoveTo(k); err != nil {
			return nil, NavigateOutput{}, err
		}
		output.Moved = true
	default:
		return nil, NavigateOutput{}, fmt.Errorf("%w: unknown action %q", domain.ErrInvalidInput, input.Action)
	}

	output.Sentence = toSentenceOutput(session.Current())
	return nil, output, nil
}

// handleSaveAnnotation handles the save_annotation tool invocation.
// A failed write is reported as a warning: the annotation is kept in memory.
// A rejected request leaves the cursor and draft as they were.
func (s *Server) handleSaveAnnotation(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SaveAnnotationInput,
) (*mcp.CallToolResult, SaveAnnotationOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.ports.Session
	prevPos, prevDraft := session.Position(), session.Draft()
	restore := func() {
		if input.Key != "" {
			_ = session.MoveTo(prevPos)
			session.SetDraft(prevDraft)
		}
	}

	if input.Key != "" {
		k, err := domain.ParseKey(input.Key)
		if err != nil {
			return nil, SaveAnnotationOutput{}, err
		}
		if err := session.MoveTo(k); err != nil {
			restore()
			return nil, SaveAnnotationOutput{}, err
		}
	}

	triple := domain.Triple{Subject: input.Subject, Predicate: input.Predicate, Object: input.Object}
	a, err := session.Save(ctx, triple)
	if a == nil {
		restore()
		return nil, SaveAnnotationOutput{}, err
	}

	output := SaveAnnotationOutput{
		Key:        a.Key().String(),
		Persisted:  err == nil,
		Annotation: toTripleOutput(a.Triple()),
		Progress:   s.progress(),
	}
	if err != nil {
		if !errors.Is(err, domain.ErrSave) {
			return nil, SaveAnnotationOutput{}, err
		}
		output.Warning = err.Error()
	}
	return nil, output, nil
}

// handleProgress handles the progress tool invocation.
func (s *Server) handleProgress(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ ProgressInput,
) (*mcp.CallToolResult, ProgressOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return nil, s.progress(), nil
}

// progress must be called with s.mu held.
func (s *Server) progress() ProgressOutput {
	session := s.ports.Session
	p := session.Progress()

	output := ProgressOutput{
		Annotated: p.Annotated,
		Total:     p.Total,
		Percent:   p.Percent(),
		Complete:  p.Complete(),
	}
	for _, k := range session.Document().Keys() {
		if !session.IsAnnotated(k) {
			output.NextUnannotated = k.String()
			break
		}
	}
	return output
}

func toSentenceOutput(v domain.SentenceView) SentenceOutput {
	output := SentenceOutput{
		Key:           v.Key.String(),
		CaptionIndex:  v.Key.Caption,
		SentenceIndex: v.Key.Sentence,
		CaptionCount:  v.CaptionCount,
		SentenceCount: v.SentenceCount,
		Caption:       v.Caption.Text,
		Sentence:      v.Sentence.Text,
		Annotated:     v.Annotated(),
	}
	if v.Annotation != nil {
		t := toTripleOutput(v.Annotation.Triple())
		output.Annotation = &t
	}
	return output
}

func toTripleOutput(t domain.Triple) TripleOutput {
	return TripleOutput{Subject: t.Subject, Predicate: t.Predicate, Object: t.Object}
}
