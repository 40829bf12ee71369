package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTextOverwrites(t *testing.T) {
	t.Parallel()

	store := NewFileStore(t.TempDir())

	path, err := store.WriteText("output", "summary.txt", "first")
	require.NoError(t, err)
	_, err = store.WriteText("output", "summary.txt", "second")
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(raw))

	text, err := store.ReadText("output", "summary.txt")
	require.NoError(t, err)
	assert.Equal(t, "second", text)
}

func TestWriteJSONRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewFileStore(t.TempDir())
	fixture := []json.RawMessage{
		json.RawMessage(`{"link":"https://a.example","pagemap":{"metatags":[{"og:title":"A"}]}}`),
		json.RawMessage(`{"link":"https://b.example","rank":2}`),
	}

	_, err := store.WriteJSON("news", "2024-01-02-03-04-05.json", fixture)
	require.NoError(t, err)

	var got, want []any
	require.NoError(t, store.ReadJSON("news", "2024-01-02-03-04-05.json", &got))
	raw, err := json.Marshal(fixture)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &want))

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteJSONIndentPreservesKeyOrder(t *testing.T) {
	t.Parallel()

	store := NewFileStore(t.TempDir())
	_, err := store.WriteJSONIndent("assessment", "c1.json", []byte(`{"z":1,"a":{"b":true}}`))
	require.NoError(t, err)

	text, err := store.ReadText("assessment", "c1.json")
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"z\": 1,\n    \"a\": {\n        \"b\": true\n    }\n}", text)
}

func TestWriteJSONIndentRejectsInvalid(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	store := NewFileStore(base)
	_, err := store.WriteJSONIndent("assessment", "bad.json", []byte("not json"))
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(base, "assessment", "bad.json"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestListSortsRegularFiles(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	store := NewFileStore(base)
	for _, name := range []string{"b.txt", "a.txt"} {
		_, err := store.WriteText("claims", name, name)
		require.NoError(t, err)
	}
	require.NoError(t, os.Mkdir(filepath.Join(base, "claims", "nested"), 0o755))

	names, err := store.List("claims")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt"}, names)

	_, err = store.List("missing")
	assert.Error(t, err)
}
