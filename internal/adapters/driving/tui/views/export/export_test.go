package export

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/areflesh/text-annot/internal/adapters/driven/storage/memory"
	"github.com/areflesh/text-annot/internal/adapters/driving/tui/components/status"
	"github.com/areflesh/text-annot/internal/adapters/driving/tui/messages"
	"github.com/areflesh/text-annot/internal/core/domain"
	"github.com/areflesh/text-annot/internal/core/ports/driving"
	"github.com/areflesh/text-annot/internal/core/services"
	"github.com/areflesh/text-annot/internal/segmenter"
)

func annotatedSession(t *testing.T) driving.Session {
	t.Helper()
	opener := services.NewSessionService(segmenter.New(), memory.NewAnnotationStore())
	session, err := opener.Open(context.Background(), "captions.txt",
		[]byte("A cat sleeps. It dreams.\nA dog runs."))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, session.MoveTo(domain.NewKey(1, 0)))
	_, err = session.Save(ctx, domain.Triple{Subject: "dog", Predicate: "runs", Object: "none"})
	require.NoError(t, err)
	require.NoError(t, session.MoveTo(domain.NewKey(0, 1)))
	_, err = session.Save(ctx, domain.Triple{Subject: "it", Predicate: "dreams", Object: "none"})
	require.NoError(t, err)
	return session
}

func newTestView(t *testing.T) (*View, string) {
	t.Helper()
	dir := t.TempDir()
	v := NewView(nil, nil, dir)
	v.SetDimensions(120, 30)
	v.SetSession(annotatedSession(t))
	v.Init()
	return v, dir
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil, "")

	require.NotNil(t, v)
	assert.NotNil(t, v.styles)
	assert.NotNil(t, v.keymap)
	assert.True(t, v.indent)
	assert.Nil(t, v.Export())
	assert.Empty(t, v.Rows())
}

func TestView_RowsInDocumentOrder(t *testing.T) {
	v, _ := newTestView(t)

	rows := v.Rows()

	require.Len(t, rows, 2)
	assert.Equal(t, []string{"1", "2", "It dreams.", "it", "dreams", "none"}, []string(rows[0]))
	assert.Equal(t, []string{"2", "1", "A dog runs.", "dog", "runs", "none"}, []string(rows[1]))
}

func TestView_ViewShowsSummary(t *testing.T) {
	v, _ := newTestView(t)

	view := v.View()

	assert.Contains(t, view, "captions.txt")
	assert.Contains(t, view, "2 of 3 sentences annotated across 2 captions")
	assert.Contains(t, view, "Predicate")
	assert.Contains(t, view, "dreams")
}

func TestView_ViewWithoutSession(t *testing.T) {
	v := NewView(nil, nil, "")
	v.Init()

	assert.Contains(t, v.View(), "No file is open.")
}

func TestView_ViewNothingAnnotated(t *testing.T) {
	opener := services.NewSessionService(segmenter.New(), memory.NewAnnotationStore())
	session, err := opener.Open(context.Background(), "empty.txt", []byte("One line."))
	require.NoError(t, err)

	v := NewView(nil, nil, "")
	v.SetSession(session)
	v.Init()

	assert.Contains(t, v.View(), "Nothing annotated yet.")
}

func TestView_TableNavigation(t *testing.T) {
	v, _ := newTestView(t)
	assert.Equal(t, 0, v.Cursor())

	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, v.Cursor())

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 0, v.Cursor())
}

func TestView_WriteJSON(t *testing.T) {
	v, dir := newTestView(t)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'w'}})
	require.NotNil(t, cmd)

	written, ok := cmd().(messages.ExportWritten)
	require.True(t, ok)
	require.NoError(t, written.Err)
	assert.Equal(t, filepath.Join(dir, "annotations_captions.json"), written.Path)
	assert.Equal(t, 2, written.Count)

	data, err := os.ReadFile(written.Path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{\n  \""))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "captions.txt", decoded["filename"])
	assert.EqualValues(t, 3, decoded["total_sentences"])
	annotations, ok := decoded["annotations"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, annotations, "0_1")
	assert.Contains(t, annotations, "1_0")

	v.Update(written)
	assert.Equal(t, status.StateSaved, v.StatusBar().State())
	assert.Contains(t, v.StatusBar().Message(), "Exported 2 annotations")
}

func TestView_WriteCompactJSON(t *testing.T) {
	v, _ := newTestView(t)
	v.SetIndent(false)

	written := v.write()().(messages.ExportWritten)
	require.NoError(t, written.Err)

	data, err := os.ReadFile(written.Path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "\n"))
}

func TestView_WriteWithoutSession(t *testing.T) {
	v := NewView(nil, nil, "")

	written := v.write()().(messages.ExportWritten)

	assert.ErrorIs(t, written.Err, ErrNoSession)
}

func TestView_WriteFailure(t *testing.T) {
	v := NewView(nil, nil, filepath.Join(t.TempDir(), "missing", "dir"))
	v.SetSession(annotatedSession(t))
	v.Init()

	written := v.write()().(messages.ExportWritten)
	require.Error(t, written.Err)

	v.Update(written)
	assert.Error(t, v.Err())
	assert.Equal(t, status.StateError, v.StatusBar().State())
}

func TestView_EscReturnsToAnnotate(t *testing.T) {
	v, _ := newTestView(t)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewAnnotate}, cmd())
}

func TestView_RefreshPicksUpNewAnnotations(t *testing.T) {
	v, _ := newTestView(t)
	session := v.session
	require.NoError(t, session.MoveTo(domain.NewKey(0, 0)))
	_, err := session.Save(context.Background(), domain.Triple{Subject: "cat", Predicate: "sleeps", Object: "none"})
	require.NoError(t, err)

	v.Refresh()

	assert.Len(t, v.Rows(), 3)
	assert.Equal(t, 3, v.Export().AnnotatedSentences)
}

func TestColumns(t *testing.T) {
	cols := columns(120)
	require.Len(t, cols, 6)
	assert.Equal(t, 58, cols[2].Width)

	narrow := columns(40)
	assert.Equal(t, 20, narrow[2].Width)
}
