// Package validator checks produced CSV files against the output schema.
// Validation is advisory in the batch flow: a failing file is logged for
// manual inspection, not discarded.
package validator

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"fjacquet/stmt-ingest/internal/dateutils"
	"fjacquet/stmt-ingest/internal/logging"
	"fjacquet/stmt-ingest/internal/models"
	"fjacquet/stmt-ingest/internal/parsererror"

	"github.com/shopspring/decimal"
)

// Validator validates CSV files against the expected transaction schema.
type Validator struct {
	logger logging.Logger
}

// New creates a Validator.
func New(logger logging.Logger) *Validator {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Validator{logger: logger}
}

// Validate checks the schema and every row of the CSV file, accumulating all
// problems before failing. It returns a *parsererror.ValidationError listing
// every problem found, or nil when the file is clean.
func (v *Validator) Validate(csvPath string) error {
	file, err := os.Open(csvPath) // #nosec G304 -- validator runs over produced output files
	if err != nil {
		return &parsererror.ValidationError{
			FilePath: csvPath,
			Problems: []string{fmt.Sprintf("failed to read CSV: %v", err)},
		}
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			v.logger.WithError(cerr).Warn("Failed to close CSV file")
		}
	}()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return &parsererror.ValidationError{
			FilePath: csvPath,
			Problems: []string{fmt.Sprintf("failed to read CSV header: %v", err)},
		}
	}

	columns, problems := v.validateSchema(header)
	if len(problems) > 0 {
		// Without the schema the per-row checks have nothing to point at.
		return &parsererror.ValidationError{FilePath: csvPath, Problems: problems}
	}

	rowNum := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			problems = append(problems, fmt.Sprintf("Row %d: unreadable record: %v", rowNum, err))
			continue
		}
		problems = append(problems, v.validateRow(record, columns, rowNum)...)
	}

	if len(problems) > 0 {
		return &parsererror.ValidationError{FilePath: csvPath, Problems: problems}
	}
	return nil
}

// validateSchema checks that all required columns are present and returns
// their positions. Missing columns are reported together in one problem.
func (v *Validator) validateSchema(header []string) (map[string]int, []string) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, required := range models.RequiredColumns {
		if _, ok := columns[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, []string{fmt.Sprintf("Missing required columns: %s", strings.Join(missing, ", "))}
	}
	return columns, nil
}

// validateRow runs the per-row checks. Row numbers are 1-indexed over data rows.
func (v *Validator) validateRow(record []string, columns map[string]int, rowNum int) []string {
	var problems []string

	field := func(name string) string {
		idx := columns[name]
		if idx >= len(record) {
			return ""
		}
		return record[idx]
	}

	dateStr := field("transaction_date")
	if _, _, err := dateutils.ParseDate(dateStr); err != nil {
		problems = append(problems,
			fmt.Sprintf("Row %d: Invalid date format for 'transaction_date': %s", rowNum, dateStr))
	}

	amountStr := field("amount")
	if amount, err := decimal.NewFromString(strings.TrimSpace(amountStr)); err != nil {
		problems = append(problems,
			fmt.Sprintf("Row %d: Invalid amount format: %s", rowNum, amountStr))
	} else if amount.Exponent() < -2 {
		problems = append(problems,
			fmt.Sprintf("Row %d: Amount has more than 2 decimal places: %s", rowNum, amountStr))
	}

	txType := field("transaction_type")
	if txType != models.TransactionTypeDebit && txType != models.TransactionTypeCredit {
		problems = append(problems,
			fmt.Sprintf("Row %d: Invalid transaction_type: %s. Must be DEBIT or CREDIT.", rowNum, txType))
	}

	return problems
}
