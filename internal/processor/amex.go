package processor

import (
	"context"
	"regexp"
	"time"

	"fjacquet/stmt-ingest/internal/common"
	"fjacquet/stmt-ingest/internal/logging"
	"fjacquet/stmt-ingest/internal/models"
	"fjacquet/stmt-ingest/internal/pdftext"
)

// AmexProcessor handles American Express credit card statements.
//
// Amex statements carry transactions as text lines:
//
//	MM/DD/YYYY [Month] Description Amount [B/P]
//
// Example: 03/18/2024 April AplPay THE UPS STORETEMPE AZ 21.62 B/P
//
// The month-name token is an artifact of multi-line merges during text
// extraction and is stripped from the description.
type AmexProcessor struct {
	extractor pdftext.Extractor
	logger    logging.Logger
}

var (
	amexFilenamePatterns = compilePatterns(
		`amex`,
		`american.?express`,
		`bluecash`,
		`platinum`,
		`gold.?card`,
	)

	amexLineAnchor  = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}\s`)
	amexDatePattern = regexp.MustCompile(`^(\d{2}/\d{2}/\d{4})`)
	// Amount is the last decimal token, optionally suffixed by the B/P
	// balance/posting marker.
	amexAmountPattern = regexp.MustCompile(`(` + amountToken + `)(?:\s*B/P)?$`)
	amexMonthPrefix   = regexp.MustCompile(`(?i)^(January|February|March|April|May|June|July|August|September|October|November|December)\s+`)
)

// NewAmexProcessor creates an Amex processor using the given text extractor.
func NewAmexProcessor(extractor pdftext.Extractor, logger logging.Logger) *AmexProcessor {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &AmexProcessor{extractor: extractor, logger: logger}
}

// Name implements Processor.
func (p *AmexProcessor) Name() string {
	return "amex"
}

// CanProcess implements Processor.
func (p *AmexProcessor) CanProcess(pdfPath string) bool {
	return matchesFilename(pdfPath, amexFilenamePatterns)
}

// Extract implements Processor.
func (p *AmexProcessor) Extract(ctx context.Context, pdfPath, outputDir string) (string, error) {
	p.logger.Info("Processing Amex PDF",
		logging.Field{Key: "file", Value: pdfPath})

	pages, err := p.extractor.ExtractPages(pdfPath)
	if err != nil {
		return "", extractionError(p.Name(), pdfPath, "text extraction failed", err)
	}

	transactions := extractFromPages(pages, parseAmexLine)
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

// parseAmexLine parses one candidate transaction line.
func parseAmexLine(line string) (models.ParsedTransaction, bool) {
	if !amexLineAnchor.MatchString(line) {
		return models.ParsedTransaction{}, false
	}

	dateStr := amexDatePattern.FindString(line)
	rest := models.CleanDescription(line[len(dateStr):])

	loc := amexAmountPattern.FindStringSubmatchIndex(rest)
	if loc == nil {
		return models.ParsedTransaction{}, false
	}
	amountStr := rest[loc[2]:loc[3]]

	description := models.CleanDescription(rest[:loc[0]])
	description = amexMonthPrefix.ReplaceAllString(description, "")
	if description == "" {
		return models.ParsedTransaction{}, false
	}

	date, err := time.Parse("01/02/2006", dateStr)
	if err != nil {
		return models.ParsedTransaction{}, false
	}

	tx, err := models.NewTransaction(date, description, amountStr)
	if err != nil {
		return models.ParsedTransaction{}, false
	}
	return tx, true
}

func compilePatterns(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(p))
	}
	return compiled
}
