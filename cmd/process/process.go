// Package process handles batch extraction of pending statement PDFs.
package process

import (
	"context"
	"time"

	"fjacquet/stmt-ingest/cmd/root"
	"fjacquet/stmt-ingest/internal/filehandler"
	"fjacquet/stmt-ingest/internal/fileutils"
	"fjacquet/stmt-ingest/internal/logging"
	"fjacquet/stmt-ingest/internal/orchestrator"
	"fjacquet/stmt-ingest/internal/pdftext"
	"fjacquet/stmt-ingest/internal/processor"
	"fjacquet/stmt-ingest/internal/validator"

	"github.com/spf13/cobra"
)

var filePath string

// Cmd represents the process command
var Cmd = &cobra.Command{
	Use:   "process",
	Short: "Extract pending statement PDFs to CSV",
	Long: `Process all PDF statements in the configured input directory, or a single
file given with --file. Each statement is routed to its issuer parser by
filename, extracted to CSV, validated, and archived to the processed or
failed directory.

Example:
  stmt-ingest process
  stmt-ingest process --file statements/chase_freedom_03_2025.pdf`,
	Run: processFunc,
}

func init() {
	Cmd.Flags().StringVarP(&filePath, "file", "f", "", "Process a single statement file instead of the input directory")
}

func processFunc(cmd *cobra.Command, args []string) {
	logger := root.Log
	cfg := root.Cfg

	text := pdftext.NewPDFExtractor()
	tables := pdftext.NewLayoutTableExtractor(text)
	router := processor.NewRouter(text, tables, logger)

	files, err := filehandler.New(cfg.Dirs.Processed, cfg.Dirs.Failed, logger)
	if err != nil {
		logger.Fatalf("Failed to prepare archive directories: %v", err)
	}

	pipeline := orchestrator.NewPipeline(
		router,
		validator.New(logger),
		files,
		cfg.Dirs.PDF,
		cfg.Dirs.CSV,
		time.Duration(cfg.Extraction.TimeoutSeconds)*time.Second,
		logger,
	)

	ctx := context.Background()
	var summary orchestrator.BatchSummary
	if filePath != "" {
		if !fileutils.FileExists(filePath) {
			logger.Fatalf("File does not exist: %s", filePath)
		}
		summary, err = pipeline.ProcessFile(ctx, filePath, root.DryRun)
	} else {
		summary, err = pipeline.Run(ctx, root.DryRun)
	}
	if err != nil {
		logger.Fatalf("Batch run failed: %v", err)
	}

	for _, msg := range summary.Errors {
		logger.WithField("error", msg).Warn("File error")
	}
	logger.Info("Processing finished",
		logging.Field{Key: "processed", Value: summary.Processed},
		logging.Field{Key: "failed", Value: summary.Failed})
	if summary.Failed > 0 {
		logger.Warn("Some files failed; see the failed directory for details",
			logging.Field{Key: "failed", Value: summary.Failed})
	}
}
