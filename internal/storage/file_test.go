package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_LoadMissingFile(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "rooms.json"))

	rooms, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, rooms)
}

func TestFileStore_SaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rooms.json")
	s := NewFileStore(path)

	require.NoError(t, s.Save([]string{"General", "Tech"}))

	rooms, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"General", "Tech"}, rooms)
}

func TestFileStore_SaveRewritesWholesale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rooms.json")
	s := NewFileStore(path)

	require.NoError(t, s.Save([]string{"General", "Tech", "Random"}))
	require.NoError(t, s.Save([]string{"General"}))

	rooms, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"General"}, rooms)
}

func TestFileStore_LoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rooms.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewFileStore(path).Load()
	assert.Error(t, err)
}
