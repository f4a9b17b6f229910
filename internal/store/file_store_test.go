package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amterp/boardkit/internal/config"
)

func TestFileStore(t *testing.T) {
	testStoreContract(t, NewFileStore(config.NewPaths(t.TempDir())))
}

func TestFileStore_Path(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(config.NewPaths(dir))

	assert.Equal(t, filepath.Join(dir, "boards.json"), s.Path(CollectionKey))
}

func TestFileStore_CreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", ".boardkit")
	s := NewFileStore(config.NewPaths(dir))

	require.NoError(t, s.Write(context.Background(), CollectionKey, []byte("[]")))

	data, err := os.ReadFile(filepath.Join(dir, "boards.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestFileStore_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(config.NewPaths(dir))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Write(ctx, CollectionKey, []byte("[]")))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "boards.json", entries[0].Name())
}

func TestFileStore_ReadError(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(config.NewPaths(dir))

	// A directory where the file should be can't be read as a file.
	require.NoError(t, os.Mkdir(s.Path(CollectionKey), 0755))

	_, _, err := s.Read(context.Background(), CollectionKey)
	assert.Error(t, err)
}
