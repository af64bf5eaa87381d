package fileutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0600))

	assert.True(t, FileExists(path))
	assert.False(t, FileExists(filepath.Join(dir, "absent.txt")))
	assert.False(t, FileExists(dir)) // directories are not files
}

func TestEnsureDirectoryExists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "deep")

	require.NoError(t, EnsureDirectoryExists(dir))
	assert.True(t, DirectoryExists(dir))

	// Idempotent
	assert.NoError(t, EnsureDirectoryExists(dir))
}

func TestListFilesWithExtension(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.pdf"), []byte("x"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.PDF"), []byte("x"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.txt"), []byte("x"), 0600))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub.pdf"), 0750))

	files, err := ListFilesWithExtension(dir, ".pdf")
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestListFilesWithExtensionMissingDir(t *testing.T) {
	_, err := ListFilesWithExtension(filepath.Join(t.TempDir(), "absent"), ".pdf")
	assert.Error(t, err)
}

func TestStem(t *testing.T) {
	assert.Equal(t, "chase_freedom_03_2025", Stem("statements/chase_freedom_03_2025.pdf"))
	assert.Equal(t, "noext", Stem("noext"))
}
