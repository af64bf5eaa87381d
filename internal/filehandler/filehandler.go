// Package filehandler manages the batch directories: discovering pending
// PDFs and archiving each file to the processed or failed directory once
// its outcome is known.
package filehandler

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"fjacquet/stmt-ingest/internal/fileutils"
	"fjacquet/stmt-ingest/internal/logging"
	"fjacquet/stmt-ingest/internal/models"
	"fjacquet/stmt-ingest/internal/parsererror"
)

// FileHandler moves statement files between the pipeline directories.
type FileHandler struct {
	processedDir string
	failedDir    string
	logger       logging.Logger
	now          func() time.Time
}

// New creates a FileHandler and ensures both archive directories exist.
// A directory that cannot be created is a fatal setup problem.
func New(processedDir, failedDir string, logger logging.Logger) (*FileHandler, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	for _, dir := range []string{processedDir, failedDir} {
		if err := fileutils.EnsureDirectoryExists(dir); err != nil {
			return nil, &parsererror.FileHandlerError{Op: "create directory", Path: dir, Err: err}
		}
	}
	return &FileHandler{
		processedDir: processedDir,
		failedDir:    failedDir,
		logger:       logger,
		now:          time.Now,
	}, nil
}

// ListPending returns all PDF files in dir, sorted by name.
func (h *FileHandler) ListPending(dir string) ([]string, error) {
	files, err := fileutils.ListFilesWithExtension(dir, ".pdf")
	if err != nil {
		return nil, &parsererror.FileHandlerError{Op: "list", Path: dir, Err: err}
	}
	return files, nil
}

// MoveToProcessed archives a successfully processed PDF, timestamping the
// name so repeated runs over identically named statements never collide.
func (h *FileHandler) MoveToProcessed(pdfPath string) (string, error) {
	dest := h.timestampedPath(h.processedDir, pdfPath)
	if err := h.moveFile(pdfPath, dest); err != nil {
		return "", err
	}
	h.logger.WithFields(
		logging.Field{Key: "file", Value: filepath.Base(pdfPath)},
		logging.Field{Key: "destination", Value: dest},
	).Info("Moved file to processed directory")
	return dest, nil
}

// MoveToFailed archives a failed PDF and writes a sibling .error.log file
// describing why it failed.
func (h *FileHandler) MoveToFailed(pdfPath string, reason error) (string, error) {
	dest := h.timestampedPath(h.failedDir, pdfPath)
	if err := h.moveFile(pdfPath, dest); err != nil {
		return "", err
	}

	logPath := dest + ".error.log"
	detail := fmt.Sprintf("File: %s\nTime: %s\nError: %v\n",
		filepath.Base(pdfPath), h.now().Format(time.RFC3339), reason)
	if err := os.WriteFile(logPath, []byte(detail), models.PermissionOutputFile); err != nil {
		h.logger.WithError(err).WithField("path", logPath).Warn("Failed to write error log")
	}

	h.logger.WithFields(
		logging.Field{Key: "file", Value: filepath.Base(pdfPath)},
		logging.Field{Key: "destination", Value: dest},
	).Warn("Moved file to failed directory")
	return dest, nil
}

// timestampedPath builds <dir>/<stem>_YYYYMMDD_HHMMSS<ext> for the source file.
func (h *FileHandler) timestampedPath(dir, pdfPath string) string {
	stamp := h.now().Format("20060102_150405")
	ext := filepath.Ext(pdfPath)
	name := fmt.Sprintf("%s_%s%s", fileutils.Stem(pdfPath), stamp, ext)
	return filepath.Join(dir, name)
}

// moveFile renames the file, falling back to copy-and-delete when the
// destination is on a different filesystem.
func (h *FileHandler) moveFile(src, dest string) error {
	if err := os.Rename(src, dest); err == nil {
		return nil
	}
	if err := copyFile(src, dest); err != nil {
		return &parsererror.FileHandlerError{Op: "move", Path: src, Err: err}
	}
	if err := os.Remove(src); err != nil {
		return &parsererror.FileHandlerError{Op: "remove source", Path: src, Err: err}
	}
	return nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src) // #nosec G304 -- paths come from the scanned input directory
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, models.PermissionOutputFile) // #nosec G304
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
