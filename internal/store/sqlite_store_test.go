package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestSQLite(t *testing.T, path string) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLiteStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStore(t *testing.T) {
	testStoreContract(t, openTestSQLite(t, filepath.Join(t.TempDir(), "boards.db")))
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "boards.db")

	first, err := OpenSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Write(ctx, CollectionKey, []byte(`[{"id":"b1","title":"x","lists":[]}]`)))
	require.NoError(t, first.Close())

	second := openTestSQLite(t, path)
	data, ok, err := second.Read(ctx, CollectionKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"b1","title":"x","lists":[]}]`, string(data))
}

func TestSQLiteStore_RequiresPath(t *testing.T) {
	_, err := OpenSQLiteStore("  ")
	assert.Error(t, err)
}

func TestSQLiteStore_CloseNil(t *testing.T) {
	var s *SQLiteStore
	assert.NoError(t, s.Close())
}
