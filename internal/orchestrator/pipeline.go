// Package orchestrator runs the batch pipeline: scanning the input directory,
// extracting each statement through the router, validating the output, and
// archiving source files by outcome. It also drives CSV ingestion into the
// ledger.
package orchestrator

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"fjacquet/stmt-ingest/internal/filehandler"
	"fjacquet/stmt-ingest/internal/logging"
	"fjacquet/stmt-ingest/internal/processor"
	"fjacquet/stmt-ingest/internal/validator"
)

// BatchSummary reports the outcome of one batch run.
type BatchSummary struct {
	Processed int
	Failed    int
	Errors    []string
}

// Pipeline processes pending PDF statements into CSV files.
type Pipeline struct {
	router    *processor.Router
	validator *validator.Validator
	files     *filehandler.FileHandler
	logger    logging.Logger

	pdfDir  string
	csvDir  string
	timeout time.Duration
}

// NewPipeline wires the batch pipeline together.
func NewPipeline(router *processor.Router, v *validator.Validator, files *filehandler.FileHandler,
	pdfDir, csvDir string, timeout time.Duration, logger logging.Logger) *Pipeline {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Pipeline{
		router:    router,
		validator: v,
		files:     files,
		logger:    logger,
		pdfDir:    pdfDir,
		csvDir:    csvDir,
		timeout:   timeout,
	}
}

// Run processes every pending PDF in the input directory. A failure on one
// file never aborts the batch; the file is archived to the failed directory
// with its error and the run continues.
func (p *Pipeline) Run(ctx context.Context, dryRun bool) (BatchSummary, error) {
	pending, err := p.files.ListPending(p.pdfDir)
	if err != nil {
		return BatchSummary{}, fmt.Errorf("failed to scan input directory: %w", err)
	}

	summary := BatchSummary{}
	if len(pending) == 0 {
		p.logger.WithField("dir", p.pdfDir).Info("No pending PDF files")
		return summary, nil
	}
	p.logger.WithField("count", len(pending)).Info("Starting batch run")

	for _, pdfPath := range pending {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("batch run canceled: %w", err)
		}
		if p.processOne(ctx, pdfPath, dryRun, &summary) {
			summary.Processed++
		} else {
			summary.Failed++
		}
	}

	p.logger.WithFields(
		logging.Field{Key: "processed", Value: summary.Processed},
		logging.Field{Key: "failed", Value: summary.Failed},
	).Info("Batch run complete")
	return summary, nil
}

// ProcessFile runs the pipeline over a single statement file.
func (p *Pipeline) ProcessFile(ctx context.Context, pdfPath string, dryRun bool) (BatchSummary, error) {
	summary := BatchSummary{}
	if p.processOne(ctx, pdfPath, dryRun, &summary) {
		summary.Processed++
	} else {
		summary.Failed++
	}
	return summary, nil
}

// processOne handles one PDF end to end and reports success. Validation is
// advisory: a validation failure is logged and the file still counts as
// processed.
func (p *Pipeline) processOne(ctx context.Context, pdfPath string, dryRun bool, summary *BatchSummary) bool {
	log := p.logger.WithField("file", filepath.Base(pdfPath))
	log.Info("Processing statement")

	if dryRun {
		proc, err := p.router.Select(pdfPath)
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", filepath.Base(pdfPath), err))
			return false
		}
		log.WithField("processor", proc.Name()).Info("Dry run: would process file")
		return true
	}

	fileCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	csvPath, err := p.router.Extract(fileCtx, pdfPath, p.csvDir)
	if err != nil {
		summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", filepath.Base(pdfPath), err))
		log.WithError(err).Error("Extraction failed")
		if _, moveErr := p.files.MoveToFailed(pdfPath, err); moveErr != nil {
			log.WithError(moveErr).Error("Failed to archive failed file")
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", filepath.Base(pdfPath), moveErr))
		}
		return false
	}

	if err := p.validator.Validate(csvPath); err != nil {
		log.WithError(err).Warn("Validation failed; CSV kept for manual inspection")
	}

	if _, err := p.files.MoveToProcessed(pdfPath); err != nil {
		summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", filepath.Base(pdfPath), err))
		log.WithError(err).Error("Failed to archive processed file")
		return false
	}

	log.WithField("csv", csvPath).Info("Statement processed")
	return true
}
