// Package csvparser reads bank CSV exports into normalized transactions for
// ingestion into the ledger. Exports use a Date/Description/Amount header in
// the bank convention: negative amounts are charges, positive amounts are
// payments or refunds.
package csvparser

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"fjacquet/stmt-ingest/internal/common"
	"fjacquet/stmt-ingest/internal/logging"
	"fjacquet/stmt-ingest/internal/models"

	"github.com/shopspring/decimal"
)

// exportRow is the gocsv row struct for bank export files.
type exportRow struct {
	Date        string `csv:"Date"`
	Description string `csv:"Description"`
	Amount      string `csv:"Amount"`
}

var exportDateFormats = []string{"01/02/2006", "2006-01-02"}

// Parser converts bank CSV export files into ParsedTransactions.
type Parser struct {
	logger logging.Logger
}

// New creates a Parser.
func New(logger logging.Logger) *Parser {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Parser{logger: logger}
}

// Parse reads a bank CSV export. Rows with unparseable dates are skipped with
// a warning rather than failing the whole file, matching how banks pad
// exports with summary lines.
func (p *Parser) Parse(csvPath string) ([]models.ParsedTransaction, error) {
	rows, err := common.ReadCSVFile[exportRow](csvPath, p.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV export: %w", err)
	}

	transactions := make([]models.ParsedTransaction, 0, len(rows))
	for i, row := range rows {
		date, ok := parseExportDate(row.Date)
		if !ok {
			p.logger.WithFields(
				logging.Field{Key: "row", Value: i + 1},
				logging.Field{Key: "date", Value: row.Date},
			).Warn("Skipping row with unparseable date")
			continue
		}

		amount, err := parseExportAmount(row.Amount)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		// Bank export convention: negative is money out.
		txType := models.TransactionTypeCredit
		if amount.IsNegative() {
			txType = models.TransactionTypeDebit
		}

		transactions = append(transactions, models.ParsedTransaction{
			Date:        date,
			Description: models.CleanDescription(row.Description),
			Amount:      amount.Abs().Round(2),
			Type:        txType,
		})
	}
	return transactions, nil
}

// ParseProduced reads a CSV produced by the statement parsers, in the
// transaction_date/description/amount/transaction_type schema.
func (p *Parser) ParseProduced(csvPath string) ([]models.ParsedTransaction, error) {
	rows, err := common.ReadCSVFile[models.TransactionRecord](csvPath, p.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	transactions := make([]models.ParsedTransaction, 0, len(rows))
	for i, row := range rows {
		date, err := time.Parse(models.DateLayoutISO, row.TransactionDate)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid transaction_date %q", i+1, row.TransactionDate)
		}
		amount, err := decimal.NewFromString(row.Amount)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid amount %q", i+1, row.Amount)
		}
		if row.TransactionType != models.TransactionTypeDebit && row.TransactionType != models.TransactionTypeCredit {
			return nil, fmt.Errorf("row %d: invalid transaction_type %q", i+1, row.TransactionType)
		}
		transactions = append(transactions, models.ParsedTransaction{
			Date:        date,
			Description: row.Description,
			Amount:      amount,
			Type:        row.TransactionType,
		})
	}
	return transactions, nil
}

func parseExportDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, format := range exportDateFormats {
		if t, err := time.Parse(format, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseExportAmount(value string) (decimal.Decimal, error) {
	cleaned := strings.NewReplacer("$", "", ",", "").Replace(strings.TrimSpace(value))
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q: %w", value, err)
	}
	return amount, nil
}

// FilenameInfo carries the bank, card, and billing period encoded in a
// statement filename of the form bank_card_MM_YYYY.pdf.
type FilenameInfo struct {
	BankName string
	CardName string
	Month    string
	Year     string
}

// ParseFilename extracts bank and card names plus the billing period from a
// statement filename. Missing parts are left empty.
func ParseFilename(path string) FilenameInfo {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	parts := strings.Split(base, "_")

	var info FilenameInfo
	if len(parts) >= 2 {
		info.BankName = title(parts[0])
		info.CardName = title(parts[1])
	}
	if len(parts) >= 4 {
		info.Month = parts[len(parts)-2]
		info.Year = parts[len(parts)-1]
	}
	return info
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
