package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 300, cfg.Chunker.MaxChars)
	assert.Equal(t, 10, cfg.Search.TopK)
	assert.Equal(t, 100, cfg.Search.ChunkLimit)
	assert.Equal(t, "local", cfg.Embedder.Type)
}

func TestLoadAppliesPartialDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input_dir: ./corpus\nchunker:\n  max_chars: 500\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "./corpus", cfg.InputDir)
	assert.Equal(t, 500, cfg.Chunker.MaxChars)
	assert.Equal(t, 100, cfg.Search.ChunkLimit, "unset fields fall back to defaults")
}

func TestLoadRejectsChunkLimitBelowTopK(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("search:\n  top_k: 50\n  chunk_limit: 20\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err, "chunk_limit must exceed top_k for dedup headroom")
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := defaultConfig()
	cfg.InputDir = "somewhere"
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
