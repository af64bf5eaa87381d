package processor

import (
	"context"
	"regexp"
	"strings"
	"time"

	"fjacquet/stmt-ingest/internal/common"
	"fjacquet/stmt-ingest/internal/logging"
	"fjacquet/stmt-ingest/internal/models"
	"fjacquet/stmt-ingest/internal/pdftext"
)

// ChaseProcessor handles Chase credit card statements.
//
// Chase statements carry transactions as text lines:
//
//	MM/DD DESCRIPTION AMOUNT
//
// Example: 12/08 LYFT *RIDE SUN 4AM HELP.LYFT.COM CA 105.94
//
// The date carries no year; it is inferred from the filename per extraction.
type ChaseProcessor struct {
	extractor pdftext.Extractor
	logger    logging.Logger
	now       func() time.Time
}

var (
	chaseFilenamePatterns = compilePatterns(
		`chase`,
		`sapphire`,
		`freedom`,
		`slate`,
		`primevisa`,
	)

	chaseLineAnchor   = regexp.MustCompile(`^\d{2}/\d{2}\s`)
	chaseLinePattern  = regexp.MustCompile(`^(\d{2}/\d{2})\s+(.+?)\s+(` + amountToken + `)$`)
	chaseDateToken    = regexp.MustCompile(`^\d{2}/\d{2}$`)
	chaseAmountSuffix = regexp.MustCompile(`^` + amountToken + `$`)
)

// NewChaseProcessor creates a Chase processor using the given text extractor.
func NewChaseProcessor(extractor pdftext.Extractor, logger logging.Logger) *ChaseProcessor {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &ChaseProcessor{extractor: extractor, logger: logger, now: time.Now}
}

// Name implements Processor.
func (p *ChaseProcessor) Name() string {
	return "chase"
}

// CanProcess implements Processor.
func (p *ChaseProcessor) CanProcess(pdfPath string) bool {
	return matchesFilename(pdfPath, chaseFilenamePatterns)
}

// Extract implements Processor.
func (p *ChaseProcessor) Extract(ctx context.Context, pdfPath, outputDir string) (string, error) {
	p.logger.Info("Processing Chase PDF",
		logging.Field{Key: "file", Value: pdfPath})

	// The statement year is inferred once per extraction call.
	year := yearFromFilename(pdfPath, p.now)

	pages, err := p.extractor.ExtractPages(pdfPath)
	if err != nil {
		return "", extractionError(p.Name(), pdfPath, "text extraction failed", err)
	}

	transactions := extractFromPages(pages, func(line string) (models.ParsedTransaction, bool) {
		return parseChaseLine(line, year)
	})
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
		logging.Field{Key: "output", Value: csvPath},
		logging.Field{Key: "year", Value: year})
	return csvPath, nil
}

// parseChaseLine parses one candidate transaction line with the inferred year.
func parseChaseLine(line string, year int) (models.ParsedTransaction, bool) {
	if !chaseLineAnchor.MatchString(line) {
		return models.ParsedTransaction{}, false
	}

	var dateStr, description, amountStr string
	if m := chaseLinePattern.FindStringSubmatch(line); m != nil {
		dateStr, description, amountStr = m[1], m[2], m[3]
	} else {
		// Fallback for lines with irregular spacing: date first, amount last,
		// everything in between is description.
		parts := strings.Fields(line)
		if len(parts) < 3 {
			return models.ParsedTransaction{}, false
		}
		if !chaseDateToken.MatchString(parts[0]) || !chaseAmountSuffix.MatchString(parts[len(parts)-1]) {
			return models.ParsedTransaction{}, false
		}
		dateStr = parts[0]
		amountStr = parts[len(parts)-1]
		description = strings.Join(parts[1:len(parts)-1], " ")
	}

	date, ok := monthDay(dateStr, year)
	if !ok {
		return models.ParsedTransaction{}, false
	}
	if models.CleanDescription(description) == "" {
		return models.ParsedTransaction{}, false
	}

	tx, err := models.NewTransaction(date, description, amountStr)
	if err != nil {
		return models.ParsedTransaction{}, false
	}
	return tx, true
}
