package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTripsThroughDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.yaml")

	s, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, 1.0, s.Float("MusicCurrent", 1))

	s.SetFloat("MusicCurrent", 0.25)
	s.SetInt("Difficulty", 2)
	s.SetString("PlayerName", "ada")
	require.NoError(t, s.Save())

	reopened, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, 0.25, reopened.Float("MusicCurrent", 1))
	assert.Equal(t, 2, reopened.Int("Difficulty", 0))
	assert.Equal(t, "ada", reopened.String("PlayerName", ""))
	assert.True(t, reopened.Has("Difficulty"))

	reopened.Delete("Difficulty")
	assert.False(t, reopened.Has("Difficulty"))
	assert.Equal(t, 5, reopened.Int("Difficulty", 5))
}

func TestOpenRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("floats: [oops"), 0o644))

	_, err := Open(path)
	assert.Error(t, err)
}

func TestMemoryStoreDoesNotWrite(t *testing.T) {
	s := Memory()
	s.SetFloat("x", 1)
	assert.NoError(t, s.Save())
	assert.Equal(t, "", s.Path())
}
