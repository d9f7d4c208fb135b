package chunkstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"semsearch/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "chunks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestInsertAssignsSequentialIDs(t *testing.T) {
	s := openTestStore(t)
	for i := 0; i < 5; i++ {
		id, err := s.Insert("doc.txt", i, "chunk text")
		require.NoError(t, err)
		assert.Equal(t, int64(i+1), id, "ids must start at 1 and follow insertion order")
	}
	n, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
}

func TestGetRoundtrip(t *testing.T) {
	s := openTestStore(t)
	id, err := s.Insert("a.md", 3, "the chunk body")
	require.NoError(t, err)

	rec, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, domain.ChunkRecord{ID: id, File: "a.md", Seq: 3, Text: "the chunk body"}, rec)
}

func TestGetNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Get(42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResetRestartsIDsAtOne(t *testing.T) {
	s := openTestStore(t)
	for i := 0; i < 3; i++ {
		_, err := s.Insert("old.txt", i, "old")
		require.NoError(t, err)
	}
	require.NoError(t, s.Reset())

	n, err := s.Count()
	require.NoError(t, err)
	assert.Zero(t, n)

	id, err := s.Insert("new.txt", 0, "new")
	require.NoError(t, err)
	assert.Equal(t, int64(1), id, "a fresh build generation must restart at id 1")

	_, err = s.Get(2)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGenerationRoundtrip(t *testing.T) {
	s := openTestStore(t)

	gen, err := s.Generation()
	require.NoError(t, err)
	assert.Empty(t, gen)

	require.NoError(t, s.SetGeneration("gen-1"))
	gen, err = s.Generation()
	require.NoError(t, err)
	assert.Equal(t, "gen-1", gen)

	require.NoError(t, s.SetGeneration("gen-2"))
	gen, err = s.Generation()
	require.NoError(t, err)
	assert.Equal(t, "gen-2", gen)
}

func TestOpenExistingMissing(t *testing.T) {
	_, err := OpenExisting(filepath.Join(t.TempDir(), "absent.db"))
	assert.Error(t, err)
}
