package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mitosis-arcade/internal/scores"
)

func TestFileStoreMissingFile(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "none.json"))
	records, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFileStoreMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "highscores.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"score":`), 0o644))

	_, err := NewFileStore(path).Load()
	assert.Error(t, err)
}

func TestFileStoreOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "highscores.json")
	s := NewFileStore(path)

	require.NoError(t, s.Save([]scores.Record{{Score: 3, Time: 1}, {Score: 2, Time: 1}}))
	require.NoError(t, s.Save([]scores.Record{{Score: 9, Time: 4.5}}))

	records, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, []scores.Record{{Score: 9, Time: 4.5}}, records)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files are cleaned up")
}

func TestFileStoreSavesEmptyAsArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "highscores.json")
	require.NoError(t, NewFileStore(path).Save(nil))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}
