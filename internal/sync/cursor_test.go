package sync

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileCursorStore_ReadMissingFile(t *testing.T) {
	store := NewFileCursorStore(filepath.Join(t.TempDir(), "last_sync.txt"), nil)
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	got := store.Read()

	assert.Equal(t, fixed.Add(-24*time.Hour), got)
}

func TestFileCursorStore_ReadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "last_sync.txt")
	require.NoError(t, os.WriteFile(path, []byte("não é uma data"), 0o644))

	store := NewFileCursorStore(path, nil)
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	assert.Equal(t, fixed.Add(-24*time.Hour), store.Read())
}

func TestFileCursorStore_WriteReadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "last_sync.txt")
	store := NewFileCursorStore(path, nil)

	cursor := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)
	require.NoError(t, store.Write(cursor))

	got := store.Read()
	assert.True(t, got.Equal(cursor), "esperado %s, obtido %s", cursor, got)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cursor.Format(time.RFC3339), string(raw))
}

func TestFileCursorStore_WriteCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "nested", "last_sync.txt")
	store := NewFileCursorStore(path, nil)

	require.NoError(t, store.Write(time.Now()))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestFileCursorStore_WriteReplacesWholeValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "last_sync.txt")
	store := NewFileCursorStore(path, nil)

	first := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	second := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	require.NoError(t, store.Write(first))
	require.NoError(t, store.Write(second))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, second.Format(time.RFC3339), string(raw))

	// Nenhum arquivo temporário pode sobrar após a troca atômica.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
