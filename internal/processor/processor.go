// Package processor contains the issuer-specific statement processors and the
// router that selects between them. Each processor turns one PDF statement
// into a normalized CSV file in the output directory.
package processor

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"

	"fjacquet/stmt-ingest/internal/models"
	"fjacquet/stmt-ingest/internal/parsererror"
)

// Processor handles statements for one issuer.
type Processor interface {
	// Name is the short issuer identifier used in logs and error messages.
	Name() string

	// CanProcess reports whether the filename matches this issuer's patterns.
	CanProcess(pdfPath string) bool

	// Extract pulls transactions out of the PDF and writes them as CSV into
	// outputDir. It returns the path of the produced CSV file.
	Extract(ctx context.Context, pdfPath, outputDir string) (string, error)
}

// matchesFilename checks the lower-cased base name against issuer patterns.
func matchesFilename(pdfPath string, patterns []*regexp.Regexp) bool {
	name := strings.ToLower(filepath.Base(pdfPath))
	for _, p := range patterns {
		if p.MatchString(name) {
			return true
		}
	}
	return false
}

// outputPath returns the CSV path for a statement: outputDir/<stem>.csv.
func outputPath(pdfPath, outputDir string) string {
	base := filepath.Base(pdfPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outputDir, stem+".csv")
}

// lineParser classifies one text line as a transaction or noise.
type lineParser func(line string) (models.ParsedTransaction, bool)

// extractFromPages runs a line parser over every line of every page, in page
// order. Lines the parser rejects are noise, not errors.
func extractFromPages(pages []string, parse lineParser) []models.ParsedTransaction {
	var transactions []models.ParsedTransaction
	for _, page := range pages {
		for _, line := range strings.Split(page, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if tx, ok := parse(line); ok {
				transactions = append(transactions, tx)
			}
		}
	}
	return transactions
}

// noTransactionsError is the shared failure for a statement in which the
// grammar matched nothing. Callers must treat it as an extraction failure,
// distinct from validation problems.
func noTransactionsError(name, pdfPath string) error {
	return &parsererror.ExtractionError{
		Processor: name,
		FilePath:  pdfPath,
		Reason:    "no transactions found",
	}
}

func extractionError(name, pdfPath, reason string, err error) error {
	return &parsererror.ExtractionError{
		Processor: name,
		FilePath:  pdfPath,
		Reason:    reason,
		Err:       err,
	}
}
