package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageSaveRead(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	rel, err := store.Save("u1/grades.csv", []byte("a,b\n"))
	require.NoError(t, err)

	data, err := store.Read(rel)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n", string(data))

	require.NoError(t, store.Delete(rel))
	_, err = store.Read(rel)
	assert.Error(t, err)
	assert.NoError(t, store.Delete(rel))
}

func TestLocalStorageRejectsEscapes(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save("../outside.csv", []byte("x"))
	assert.Error(t, err)
	_, err = store.Read("/etc/passwd")
	assert.Error(t, err)
}

func TestLocalStorageCleanup(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir)
	require.NoError(t, err)

	_, err = store.Save("old.csv", []byte("x"))
	require.NoError(t, err)
	_, err = store.Save("new.csv", []byte("y"))
	require.NoError(t, err)
	past := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "old.csv"), past, past))

	deleted, err := store.CleanupOlderThan(time.Hour)
	require.NoError(t, err)
	assert.Equal(t, []string{"old.csv"}, deleted)
	_, err = store.Read("new.csv")
	assert.NoError(t, err)
}
