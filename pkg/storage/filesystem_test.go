package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndOpenRoundTrip(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	name, err := s.Save("RCP001-receipt.pdf", []byte("content"))
	require.NoError(t, err)
	assert.Equal(t, "RCP001-receipt.pdf", name)

	file, err := s.Open(name)
	require.NoError(t, err)
	defer file.Close() //nolint:errcheck

	raw, err := os.ReadFile(file.Name())
	require.NoError(t, err)
	assert.Equal(t, "content", string(raw))
}

func TestSaveRejectsEscapingNames(t *testing.T) {
	base := t.TempDir()
	outside := filepath.Join(t.TempDir(), "outside.pdf")
	s, err := NewLocalStorage(base)
	require.NoError(t, err)

	for _, name := range []string{
		outside,
		"../outside.pdf",
		"../../outside.pdf",
		filepath.Join("nested", "..", "..", "outside.pdf"),
	} {
		_, err := s.Save(name, []byte("x"))
		assert.Error(t, err, name)
	}
	_, statErr := os.Stat(outside)
	assert.True(t, os.IsNotExist(statErr))

	// A nested relative name that stays inside the base directory is fine.
	_, err = s.Save(filepath.Join("2026", "receipt.pdf"), []byte("x"))
	require.NoError(t, err)
}

func TestDeleteMissingFileIsANoOp(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, s.Delete("never-written.pdf"))
}
