package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/areflesh/text-annot/internal/core/domain"
)

func TestAnnotationStore_Load_NotFound(t *testing.T) {
	store := NewAnnotationStore()

	file, err := store.Load(context.Background(), "a.txt")
	assert.Nil(t, file)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAnnotationStore_SaveLoad(t *testing.T) {
	store := NewAnnotationStore()
	ctx := context.Background()

	file := domain.NewAnnotationFile("a.txt")
	file.Annotations[domain.NewKey(1, 2)] = domain.Annotation{CaptionIndex: 1, SentenceIndex: 2, Subject: "s"}
	require.NoError(t, store.Save(ctx, file))
	assert.Equal(t, 1, store.Saves())

	// Mutating the caller's copy does not leak into the store.
	file.Annotations[domain.NewKey(0, 0)] = domain.Annotation{}

	loaded, err := store.Load(ctx, "a.txt")
	require.NoError(t, err)
	assert.Len(t, loaded.Annotations, 1)
	assert.Equal(t, "s", loaded.Annotations[domain.NewKey(1, 2)].Subject)
}

func TestAnnotationStore_InjectedErrors(t *testing.T) {
	store := NewAnnotationStore()
	ctx := context.Background()
	boom := errors.New("boom")

	store.SaveErr = boom
	assert.ErrorIs(t, store.Save(ctx, domain.NewAnnotationFile("a.txt")), boom)
	assert.Equal(t, 0, store.Saves())

	store.Put(domain.NewAnnotationFile("a.txt"))
	store.LoadErr = boom
	_, err := store.Load(ctx, "a.txt")
	assert.ErrorIs(t, err, boom)
}

func TestAnnotationStore_CancelledContext(t *testing.T) {
	store := NewAnnotationStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.Save(ctx, domain.NewAnnotationFile("a.txt")), context.Canceled)
	_, err := store.Load(ctx, "a.txt")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnnotationStore_Path(t *testing.T) {
	assert.Equal(t, ":memory:a.txt", NewAnnotationStore().Path("a.txt"))
}
