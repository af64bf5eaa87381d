package processor

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/stmt-ingest/internal/logging"
	"fjacquet/stmt-ingest/internal/models"
	"fjacquet/stmt-ingest/internal/pdftext"
)

// GenericProcessor is the fallback for statements with no issuer-specific
// grammar. It relies on table detection: every table found anywhere in the
// document is concatenated into one row sequence and dumped as-is. The
// output is best effort and frequently needs the validator's advisory pass.
type GenericProcessor struct {
	tables pdftext.TableExtractor
	logger logging.Logger
}

// NewGenericProcessor creates the fallback processor over a table extractor.
func NewGenericProcessor(tables pdftext.TableExtractor, logger logging.Logger) *GenericProcessor {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &GenericProcessor{tables: tables, logger: logger}
}

// Name implements Processor.
func (p *GenericProcessor) Name() string {
	return "generic"
}

// CanProcess implements Processor. The generic processor accepts any PDF,
// which guarantees router termination.
func (p *GenericProcessor) CanProcess(pdfPath string) bool {
	return true
}

// Extract implements Processor.
func (p *GenericProcessor) Extract(ctx context.Context, pdfPath, outputDir string) (string, error) {
	p.logger.Info("Processing PDF with generic table extraction",
		logging.Field{Key: "file", Value: pdfPath})

	tables, err := p.tables.ExtractTables(pdfPath)
	if err != nil {
		return "", extractionError(p.Name(), pdfPath, "table extraction failed", err)
	}
	if len(tables) == 0 {
		return "", extractionError(p.Name(), pdfPath, "no tables found in PDF", nil)
	}

	csvPath := outputPath(pdfPath, outputDir)
	rowCount, err := p.writeTables(tables, csvPath)
	if err != nil {
		return "", extractionError(p.Name(), pdfPath, "failed to write CSV", err)
	}

	p.logger.Info("Extracted table rows",
		logging.Field{Key: "rows", Value: rowCount},
		logging.Field{Key: "tables", Value: len(tables)},
		logging.Field{Key: "output", Value: csvPath})
	return csvPath, nil
}

// writeTables concatenates all tables under the first table's header. Rows
// are padded or truncated to the header width so the CSV stays rectangular.
func (p *GenericProcessor) writeTables(tables []pdftext.Table, csvPath string) (int, error) {
	if err := os.MkdirAll(filepath.Dir(csvPath), models.PermissionDirectory); err != nil {
		return 0, fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.OpenFile(csvPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, models.PermissionOutputFile)
	if err != nil {
		return 0, fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			p.logger.WithError(cerr).Warn("Failed to close CSV file")
		}
	}()

	w := csv.NewWriter(file)
	header := tables[0].Header
	if err := w.Write(header); err != nil {
		return 0, err
	}

	count := 0
	for _, table := range tables {
		for _, row := range table.Rows {
			if err := w.Write(fitRow(row, len(header))); err != nil {
				return count, err
			}
			count++
		}
	}

	w.Flush()
	return count, w.Error()
}

func fitRow(row []string, width int) []string {
	if len(row) == width {
		return row
	}
	fitted := make([]string, width)
	copy(fitted, row)
	return fitted
}
