// Package parsererror defines the error taxonomy for the statement pipeline.
// Errors are matched with errors.As at the orchestrator boundary to decide
// how a file's failure is handled.
package parsererror

import "fmt"

// ExtractionError represents a failure to pull transactions out of a
// statement: no transactions or tables found, a timeout, or an underlying
// extraction library failure. Files failing extraction are routed to the
// failed directory.
type ExtractionError struct {
	Processor string
	FilePath  string
	Reason    string
	Err       error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s extraction failed for %s: %s: %v",
			e.Processor, e.FilePath, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s extraction failed for %s: %s", e.Processor, e.FilePath, e.Reason)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// ValidationError represents schema or row-level content errors in produced
// CSV output. Validation is advisory: the pipeline logs it and proceeds.
type ValidationError struct {
	FilePath string
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %d problem(s)", e.FilePath, len(e.Problems))
}

// Detail returns every accumulated problem, one per line.
func (e *ValidationError) Detail() string {
	s := ""
	for i, p := range e.Problems {
		if i > 0 {
			s += "\n"
		}
		s += p
	}
	return s
}

// FileHandlerError represents a directory or move I/O failure. During
// directory bootstrap it is fatal for the whole run; during processing it is
// fatal for that file only.
type FileHandlerError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileHandlerError) Error() string {
	return fmt.Sprintf("file handler %s failed for %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileHandlerError) Unwrap() error {
	return e.Err
}
