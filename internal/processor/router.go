package processor

import (
	"context"
	"fmt"

	"fjacquet/stmt-ingest/internal/logging"
	"fjacquet/stmt-ingest/internal/parsererror"
	"fjacquet/stmt-ingest/internal/pdftext"
)

// Router routes statement files to issuer processors based on filename.
// Processors are checked in order; the first match wins. The generic
// fallback is appended by construction, so every file finds a processor.
type Router struct {
	processors []Processor
	logger     logging.Logger
}

// NewRouter builds the standard processor list over the given extractors:
// issuer-specific processors first, generic fallback always last.
func NewRouter(text pdftext.Extractor, tables pdftext.TableExtractor, logger logging.Logger) *Router {
	if logger == nil {
		logger = logging.GetLogger()
	}
	generic := NewGenericProcessor(tables, logger)
	return newRouterWithFallback(logger, generic,
		NewAmexProcessor(text, logger),
		NewChaseProcessor(text, logger),
		NewCitiProcessor(generic, logger),
		NewDiscoverProcessor(text, logger),
	)
}

// newRouterWithFallback appends the fallback unconditionally. Removing the
// fallback from the list is therefore impossible through the public API.
func newRouterWithFallback(logger logging.Logger, fallback Processor, issuers ...Processor) *Router {
	return &Router{
		processors: append(issuers, fallback),
		logger:     logger,
	}
}

// Processors returns the ordered processor list.
func (r *Router) Processors() []Processor {
	return r.processors
}

// Select returns the first processor whose filename patterns match.
// With the generic fallback in place this cannot fail; the error branch
// exists only to surface a misconfigured router as a fatal condition
// instead of silently dropping files.
func (r *Router) Select(pdfPath string) (Processor, error) {
	for _, p := range r.processors {
		if p.CanProcess(pdfPath) {
			r.logger.Info("Selected processor",
				logging.Field{Key: "processor", Value: p.Name()},
				logging.Field{Key: "file", Value: pdfPath})
			return p, nil
		}
	}
	return nil, fmt.Errorf("no processor found for %s: generic fallback missing from router", pdfPath)
}

// Extract routes the file to its processor and runs the extraction under the
// caller's context deadline. Deadline expiry is an ExtractionError, not a
// crash; the extraction goroutine is left to finish and its result is
// discarded.
func (r *Router) Extract(ctx context.Context, pdfPath, outputDir string) (string, error) {
	proc, err := r.Select(pdfPath)
	if err != nil {
		return "", err
	}

	type result struct {
		csvPath string
		err     error
	}
	done := make(chan result, 1)
	go func() {
		csvPath, exErr := proc.Extract(ctx, pdfPath, outputDir)
		done <- result{csvPath: csvPath, err: exErr}
	}()

	select {
	case <-ctx.Done():
		return "", &parsererror.ExtractionError{
			Processor: proc.Name(),
			FilePath:  pdfPath,
			Reason:    "processing timed out",
			Err:       ctx.Err(),
		}
	case res := <-done:
		return res.csvPath, res.err
	}
}
