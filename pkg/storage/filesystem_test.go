package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	name, err := store.Save("certificates/abc.pdf", []byte("%PDF"))
	require.NoError(t, err)
	assert.Equal(t, "certificates/abc.pdf", name)
	assert.True(t, store.Exists(name))

	data, err := store.Read(name)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), data)

	require.NoError(t, store.Delete(name))
	assert.False(t, store.Exists(name))
	require.NoError(t, store.Delete(name))
}

func TestLocalStorageRejectsTraversal(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save("../escape.pdf", []byte("x"))
	assert.Error(t, err)
	_, err = store.Read("/etc/passwd")
	assert.Error(t, err)
}

func TestLocalStorageCleanupOlderThan(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir)
	require.NoError(t, err)

	_, err = store.Save("transcripts/old.pdf", []byte("old"))
	require.NoError(t, err)
	_, err = store.Save("transcripts/new.pdf", []byte("new"))
	require.NoError(t, err)
	past := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "transcripts/old.pdf"), past, past))

	deleted, err := store.CleanupOlderThan("transcripts", 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("transcripts", "old.pdf")}, deleted)
	assert.True(t, store.Exists("transcripts/new.pdf"))

	deleted, err = store.CleanupOlderThan("missing", time.Hour)
	require.NoError(t, err)
	assert.Empty(t, deleted)
}
