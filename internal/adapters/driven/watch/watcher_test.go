package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWatcher_Defaults(t *testing.T) {
	w := NewWatcher()
	assert.Equal(t, DefaultInterval, w.interval)

	w = NewWatcher(WithInterval(time.Second))
	assert.Equal(t, time.Second, w.interval)

	w = NewWatcher(WithInterval(0))
	assert.Equal(t, DefaultInterval, w.interval)
}

func TestIsChange(t *testing.T) {
	target := "/data/notes/a.txt.json"

	tests := []struct {
		name string
		ev   fsnotify.Event
		want bool
	}{
		{"write", fsnotify.Event{Name: target, Op: fsnotify.Write}, true},
		{"create", fsnotify.Event{Name: target, Op: fsnotify.Create}, true},
		{"remove", fsnotify.Event{Name: target, Op: fsnotify.Remove}, false},
		{"chmod", fsnotify.Event{Name: target, Op: fsnotify.Chmod}, false},
		{"other file", fsnotify.Event{Name: "/data/notes/b.txt.json", Op: fsnotify.Write}, false},
		{"temp file", fsnotify.Event{Name: "/data/notes/.annotations-1.tmp", Op: fsnotify.Create}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isChange(tt.ev, target))
		})
	}
}

func TestWatcher_Watch_MissingDirectory(t *testing.T) {
	w := NewWatcher()

	_, err := w.Watch(context.Background(), filepath.Join(t.TempDir(), "missing", "a.json"))
	assert.Error(t, err)
}

func TestWatcher_Watch_NotifiesOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := NewWatcher(WithInterval(10*time.Millisecond)).Watch(ctx, path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`{"filename":"a"}`), 0o600))

	select {
	case _, ok := <-events:
		assert.True(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("no notification after write")
	}
}

func TestWatcher_Watch_NotifiesOnReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := NewWatcher(WithInterval(10*time.Millisecond)).Watch(ctx, path)
	require.NoError(t, err)

	tmp := filepath.Join(dir, "a.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("{}"), 0o600))
	require.NoError(t, os.Rename(tmp, path))

	select {
	case <-events:
	case <-time.After(5 * time.Second):
		t.Fatal("no notification after rename")
	}
}

func TestWatcher_Watch_ClosesOnCancel(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())

	events, err := NewWatcher().Watch(ctx, filepath.Join(dir, "a.json"))
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-events:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}
