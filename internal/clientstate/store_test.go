package clientstate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("sj_user", map[string]string{"name": "Asha"}))

	var out map[string]string
	require.True(t, store.Get("sj_user", &out))
	require.Equal(t, "Asha", out["name"])

	store.Delete("sj_user")
	require.False(t, store.Get("sj_user", &out))
}

func TestFileStoreMissingAndCorruptReadAsAbsent(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	var out map[string]string
	require.False(t, store.Get("nothing", &out))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0o600))
	require.False(t, store.Get("broken", &out))
}

func TestFileStoreSanitizesKeys(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set("../escape", "value"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	var out string
	require.True(t, store.Get("../escape", &out))
	require.Equal(t, "value", out)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	var out int
	require.False(t, store.Get("n", &out))

	require.NoError(t, store.Set("n", 42))
	require.True(t, store.Get("n", &out))
	require.Equal(t, 42, out)

	store.Delete("n")
	require.False(t, store.Get("n", &out))
}
