package filehandler

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fjacquet/stmt-ingest/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) (*FileHandler, string, string) {
	t.Helper()
	base := t.TempDir()
	processed := filepath.Join(base, "processed")
	failed := filepath.Join(base, "failed")

	h, err := New(processed, failed, logging.NewMockLogger())
	require.NoError(t, err)
	h.now = func() time.Time { return time.Date(2025, 3, 15, 14, 30, 45, 0, time.UTC) }
	return h, processed, failed
}

func writePDF(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.5\ncontent"), 0600))
	return path
}

func TestNewCreatesDirectories(t *testing.T) {
	_, processed, failed := newTestHandler(t)

	for _, dir := range []string{processed, failed} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestListPending(t *testing.T) {
	h, _, _ := newTestHandler(t)
	inputDir := t.TempDir()

	writePDF(t, inputDir, "b_statement.pdf")
	writePDF(t, inputDir, "a_statement.PDF")
	require.NoError(t, os.WriteFile(filepath.Join(inputDir, "notes.txt"), []byte("x"), 0600))

	files, err := h.ListPending(inputDir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "a_statement.PDF", filepath.Base(files[0]))
	assert.Equal(t, "b_statement.pdf", filepath.Base(files[1]))
}

func TestMoveToProcessed(t *testing.T) {
	h, processed, _ := newTestHandler(t)
	src := writePDF(t, t.TempDir(), "chase_freedom_03_2025.pdf")

	dest, err := h.MoveToProcessed(src)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(processed, "chase_freedom_03_2025_20250315_143045.pdf"), dest)

	assert.NoFileExists(t, src)
	assert.FileExists(t, dest)
}

func TestMoveToFailedWritesErrorLog(t *testing.T) {
	h, _, failed := newTestHandler(t)
	src := writePDF(t, t.TempDir(), "broken_statement.pdf")

	dest, err := h.MoveToFailed(src, errors.New("no transactions found"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(failed, "broken_statement_20250315_143045.pdf"), dest)
	assert.NoFileExists(t, src)
	assert.FileExists(t, dest)

	logData, err := os.ReadFile(dest + ".error.log")
	require.NoError(t, err)
	assert.Contains(t, string(logData), "broken_statement.pdf")
	assert.Contains(t, string(logData), "no transactions found")
}

func TestMoveMissingSource(t *testing.T) {
	h, _, _ := newTestHandler(t)

	_, err := h.MoveToProcessed(filepath.Join(t.TempDir(), "absent.pdf"))
	assert.Error(t, err)
}
