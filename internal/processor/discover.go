package processor

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"fjacquet/stmt-ingest/internal/common"
	"fjacquet/stmt-ingest/internal/logging"
	"fjacquet/stmt-ingest/internal/models"
	"fjacquet/stmt-ingest/internal/pdftext"
)

// DiscoverProcessor handles Discover credit card statements.
//
// Discover statements carry transactions as text lines with two dates
// (transaction date and posting date) and a currency-marked amount followed
// by a category word:
//
//	MM/DD/YY MM/DD/YY DESCRIPTION $ AMOUNT Category
//
// Example: 12/02/25 12/02/25 KATE SPADE 33224 SANTA CLARA CA $ 195.78 Merchandise
//
// Only the transaction date is kept; the category word is excluded from both
// amount and description.
type DiscoverProcessor struct {
	extractor pdftext.Extractor
	logger    logging.Logger
}

var (
	discoverFilenamePatterns = compilePatterns(
		`discover`,
		`discover.?it`,
	)

	discoverLineAnchor  = regexp.MustCompile(`^\d{2}/\d{2}/\d{2}\s+\d{2}/\d{2}/\d{2}\s`)
	discoverLinePattern = regexp.MustCompile(`^(\d{2}/\d{2}/\d{2})\s+(\d{2}/\d{2}/\d{2})\s+(.+)$`)
	// Amount marked with a currency symbol, followed by the category word.
	discoverAmountPattern     = regexp.MustCompile(`\$\s*(` + amountToken + `)\s+\w+`)
	discoverBareAmountPattern = regexp.MustCompile(`\$\s*(` + amountToken + `)\s*$`)
)

// NewDiscoverProcessor creates a Discover processor using the given text extractor.
func NewDiscoverProcessor(extractor pdftext.Extractor, logger logging.Logger) *DiscoverProcessor {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &DiscoverProcessor{extractor: extractor, logger: logger}
}

// Name implements Processor.
func (p *DiscoverProcessor) Name() string {
	return "discover"
}

// CanProcess implements Processor.
func (p *DiscoverProcessor) CanProcess(pdfPath string) bool {
	return matchesFilename(pdfPath, discoverFilenamePatterns)
}

// Extract implements Processor.
func (p *DiscoverProcessor) Extract(ctx context.Context, pdfPath, outputDir string) (string, error) {
	p.logger.Info("Processing Discover PDF",
		logging.Field{Key: "file", Value: pdfPath})

	pages, err := p.extractor.ExtractPages(pdfPath)
	if err != nil {
		return "", extractionError(p.Name(), pdfPath, "text extraction failed", err)
	}

	transactions := extractFromPages(pages, parseDiscoverLine)
	transactions = models.DedupeTransactions(transactions)
	if len(transactions) == 0 {
		return "", noTransactionsError(p.Name(), pdfPath)
	}

	csvPath := outputPath(pdfPath, outputDir)
	if err := common.WriteTransactionsToCSV(transactions, csvPath, p.logger); err != nil {
		return "", extractionError(p.Name(), pdfPath, "failed to write CSV", err)
	}

	p.logger.Info("Extracted transactions",
		logging.Field{Key: "count", Value: len(transactions)},
		logging.Field{Key: "output", Value: csvPath})
	return csvPath, nil
}

// parseDiscoverLine parses one candidate transaction line.
func parseDiscoverLine(line string) (models.ParsedTransaction, bool) {
	if !discoverLineAnchor.MatchString(line) {
		return models.ParsedTransaction{}, false
	}

	m := discoverLinePattern.FindStringSubmatch(line)
	if m == nil {
		return models.ParsedTransaction{}, false
	}
	transDateStr := m[1]
	rest := m[3]

	loc := discoverAmountPattern.FindStringSubmatchIndex(rest)
	if loc == nil {
		loc = discoverBareAmountPattern.FindStringSubmatchIndex(rest)
	}
	if loc == nil {
		return models.ParsedTransaction{}, false
	}
	amountStr := rest[loc[2]:loc[3]]

	description := models.CleanDescription(rest[:loc[0]])
	if description == "" {
		return models.ParsedTransaction{}, false
	}

	date, ok := parseDiscoverDate(transDateStr)
	if !ok {
		return models.ParsedTransaction{}, false
	}

	tx, err := models.NewTransaction(date, description, amountStr)
	if err != nil {
		return models.ParsedTransaction{}, false
	}
	return tx, true
}

// parseDiscoverDate expands a MM/DD/YY date into the 2000s.
func parseDiscoverDate(token string) (time.Time, bool) {
	parts := strings.Split(token, "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	month, err1 := strconv.Atoi(parts[0])
	day, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, false
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	if year < 100 {
		year += 2000
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}
