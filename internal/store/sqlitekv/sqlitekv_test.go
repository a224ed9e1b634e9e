package sqlitekv

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/tada/internal/store"
)

var _ store.KV = (*Store)(nil)

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db", "tada.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestGetMissing(t *testing.T) {
	s, _ := openTemp(t)
	_, ok, err := s.Get("items")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSetUpserts(t *testing.T) {
	s, _ := openTemp(t)
	require.NoError(t, s.Set("items", "[1]"))
	require.NoError(t, s.Set("items", "[2]"))
	require.NoError(t, s.Set("other", "x"))

	v, ok, err := s.Get("items")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[2]", v)
}

func TestPersistsAcrossReopen(t *testing.T) {
	s, path := openTemp(t)
	items := store.New(s, "tada_items_v1")
	_, err := items.Add("Write report", "work")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	reloaded := store.New(s2, "tada_items_v1")
	require.NoError(t, reloaded.Load())
	assert.Equal(t, items.Items(), reloaded.Items())
}

func TestMemoryDatabase(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set("k", "v"))
	v, ok, err := s.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}
