package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/areflesh/text-annot/internal/core/domain"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	store := NewStore(domain.StoreSettings{Dir: dir})
	store.now = func() time.Time {
		return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	}
	return store, dir
}

func writeDocument(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestNewStore_DefaultDir(t *testing.T) {
	store := NewStore(domain.StoreSettings{})
	assert.Equal(t, filepath.Join(domain.DefaultStoreDir, "a.txt.json"), store.Path("a.txt"))
}

func TestStore_Path(t *testing.T) {
	store, dir := newTestStore(t)

	assert.Equal(t, filepath.Join(dir, "captions.txt.json"), store.Path("captions.txt"))
	assert.Equal(t, filepath.Join(dir, "captions.txt.json"), store.Path("/data/in/captions.txt"))
	assert.Equal(t, filepath.Join(dir, "document.json"), store.Path(""))
}

func TestStore_Path_Pinned(t *testing.T) {
	pinned := filepath.Join(t.TempDir(), "annotations.json")
	store := NewStore(domain.StoreSettings{Dir: "ignored", Path: pinned})

	assert.Equal(t, pinned, store.Path("a.txt"))
	assert.Equal(t, pinned, store.Path("b.txt"))
}

func TestStore_Load_Missing(t *testing.T) {
	store, _ := newTestStore(t)

	file, err := store.Load(context.Background(), "captions.txt")
	assert.Nil(t, file)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_Load_CancelledContext(t *testing.T) {
	store, _ := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Load(ctx, "captions.txt")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStore_SaveLoad_RoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	stamp := time.Date(2024, 4, 30, 8, 15, 0, 0, time.UTC)
	file := domain.NewAnnotationFile("captions.txt")
	file.Annotations[domain.NewKey(0, 1)] = domain.Annotation{
		CaptionIndex:  0,
		SentenceIndex: 1,
		Caption:       "Hello world. Bye now.",
		Sentence:      "Bye now.",
		Subject:       "I",
		Predicate:     "leave",
		Object:        "now",
		Timestamp:     stamp,
	}

	require.NoError(t, store.Save(ctx, file))
	assert.Equal(t, store.now(), file.LastUpdated)

	loaded, err := store.Load(ctx, "captions.txt")
	require.NoError(t, err)
	assert.Equal(t, "captions.txt", loaded.Filename)
	require.Len(t, loaded.Annotations, 1)

	got := loaded.Annotations[domain.NewKey(0, 1)]
	assert.Equal(t, "Bye now.", got.Sentence)
	assert.Equal(t, "leave", got.Predicate)
	assert.True(t, stamp.Equal(got.Timestamp))
	assert.True(t, store.now().Equal(loaded.LastUpdated))
}

func TestStore_Save_WritesCompositeFormat(t *testing.T) {
	store, _ := newTestStore(t)

	file := domain.NewAnnotationFile("captions.txt")
	file.Annotations[domain.NewKey(2, 0)] = domain.Annotation{
		CaptionIndex: 2,
		Subject:      "s",
		Predicate:    "p",
		Object:       "o",
	}
	require.NoError(t, store.Save(context.Background(), file))

	data, err := os.ReadFile(store.Path("captions.txt"))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "captions.txt", raw["filename"])
	assert.Equal(t, "2024-05-01T10:00:00Z", raw["last_updated"])

	annotations, ok := raw["annotations"].(map[string]any)
	require.True(t, ok)
	record, ok := annotations["2_0"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(2), record["caption_index"])
	assert.Equal(t, float64(0), record["sentence_index"])
	assert.Equal(t, "", record["sentence"])
}

func TestStore_Save_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "deeper")
	store := NewStore(domain.StoreSettings{Dir: dir})

	require.NoError(t, store.Save(context.Background(), domain.NewAnnotationFile("a.txt")))
	_, err := os.Stat(filepath.Join(dir, "a.txt.json"))
	assert.NoError(t, err)
}

func TestStore_Save_LeavesNoTempFiles(t *testing.T) {
	store, dir := newTestStore(t)

	require.NoError(t, store.Save(context.Background(), domain.NewAnnotationFile("a.txt")))
	require.NoError(t, store.Save(context.Background(), domain.NewAnnotationFile("a.txt")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.txt.json", entries[0].Name())
}

func TestStore_Save_Failure(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	// A regular file where the directory should be.
	store := NewStore(domain.StoreSettings{Dir: filepath.Join(blocker, "sub")})
	file := domain.NewAnnotationFile("a.txt")

	err := store.Save(context.Background(), file)
	assert.ErrorIs(t, err, domain.ErrSave)
	assert.True(t, file.LastUpdated.IsZero())
}

func TestStore_Load_LegacyDocument(t *testing.T) {
	store, _ := newTestStore(t)
	writeDocument(t, store.Path("captions.txt"), `{
  "filename": "captions.txt",
  "annotations": {
    "3": {"caption_index": 3, "caption": "Old caption.", "subject": "a",
          "predicate": "b", "object": "c", "timestamp": "2023-11-02T09:30:12.123456"}
  },
  "last_updated": "2023-11-02T09:30:12.123456"
}`)

	file, err := store.Load(context.Background(), "captions.txt")
	require.NoError(t, err)
	require.Len(t, file.Annotations, 1)

	got, ok := file.Annotations[domain.NewKey(3, 0)]
	require.True(t, ok)
	assert.Equal(t, 3, got.CaptionIndex)
	assert.Equal(t, 0, got.SentenceIndex)
	assert.Equal(t, "Old caption.", got.Caption)
	assert.Empty(t, got.Sentence)
	assert.Equal(t, 2023, got.Timestamp.Year())
	assert.Equal(t, 123456000, got.Timestamp.Nanosecond())
	assert.Equal(t, 2023, file.LastUpdated.Year())
}

func TestStore_Load_CompositeWinsOverLegacy(t *testing.T) {
	store, _ := newTestStore(t)
	writeDocument(t, store.Path("captions.txt"), `{
  "filename": "captions.txt",
  "annotations": {
    "1":   {"caption_index": 1, "subject": "old", "predicate": "p", "object": "o"},
    "1_0": {"caption_index": 1, "sentence_index": 0, "subject": "new", "predicate": "p", "object": "o"}
  }
}`)

	file, err := store.Load(context.Background(), "captions.txt")
	require.NoError(t, err)
	require.Len(t, file.Annotations, 1)
	assert.Equal(t, "new", file.Annotations[domain.NewKey(1, 0)].Subject)
}

func TestStore_Load_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed json", `{"annotations": `},
		{"bad key", `{"annotations": {"x_1": {}}}`},
		{"negative key", `{"annotations": {"-1_0": {}}}`},
		{"caption index mismatch", `{"annotations": {"1_0": {"caption_index": 2}}}`},
		{"sentence index mismatch", `{"annotations": {"1_0": {"caption_index": 1, "sentence_index": 3}}}`},
		{"wrong field type", `{"annotations": {"1_0": {"subject": 5}}}`},
		{"duplicate legacy key", `{"annotations": {"1": {"subject": "a"}, "01": {"subject": "b"}}}`},
		{"duplicate composite key", `{"annotations": {"1_0": {}, "01_0": {}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _ := newTestStore(t)
			writeDocument(t, store.Path("c.txt"), tt.content)

			file, err := store.Load(context.Background(), "c.txt")
			assert.Nil(t, file)
			assert.ErrorIs(t, err, domain.ErrLoad)
		})
	}
}

func TestStore_Load_BadTimestampIgnored(t *testing.T) {
	store, _ := newTestStore(t)
	writeDocument(t, store.Path("c.txt"), `{
  "filename": "c.txt",
  "annotations": {"0_0": {"caption_index": 0, "sentence_index": 0, "timestamp": "yesterday"}},
  "last_updated": "soon"
}`)

	file, err := store.Load(context.Background(), "c.txt")
	require.NoError(t, err)
	assert.True(t, file.Annotations[domain.NewKey(0, 0)].Timestamp.IsZero())
	assert.True(t, file.LastUpdated.IsZero())
}

func TestStore_Load_EmptyAnnotations(t *testing.T) {
	store, _ := newTestStore(t)
	writeDocument(t, store.Path("c.txt"), `{"filename": "c.txt"}`)

	file, err := store.Load(context.Background(), "c.txt")
	require.NoError(t, err)
	assert.NotNil(t, file.Annotations)
	assert.Empty(t, file.Annotations)
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		ok   bool
		year int
	}{
		{"2024-05-01T10:00:00Z", true, 2024},
		{"2024-05-01T10:00:00.5+02:00", true, 2024},
		{"2023-01-02T03:04:05.123456", true, 2023},
		{"2022-01-02T03:04:05", true, 2022},
		{"2021-01-02 03:04:05.1", true, 2021},
		{"", false, 0},
		{"not a time", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseTimestamp(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.year, got.Year())
			}
		})
	}
}
