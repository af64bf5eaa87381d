// Package common provides shared CSV functionality across processors.
package common

import (
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/stmt-ingest/internal/logging"
	"fjacquet/stmt-ingest/internal/models"

	"github.com/gocarina/gocsv"
)

// WriteTransactionsToCSV writes transactions to a CSV file in the standard
// output schema. All processors use this function so the produced files are
// byte-for-byte consistent.
func WriteTransactionsToCSV(transactions []models.ParsedTransaction, csvFile string, logger logging.Logger) error {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if transactions == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}

	logger.Info("Writing transactions to CSV file",
		logging.Field{Key: "file", Value: csvFile},
		logging.Field{Key: "count", Value: len(transactions)})

	dir := filepath.Dir(csvFile)
	if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile) // #nosec G304 -- output path comes from configured directories
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			logger.WithError(cerr).Warn("Failed to close CSV file")
		}
	}()

	records := make([]models.TransactionRecord, 0, len(transactions))
	for _, t := range transactions {
		records = append(records, t.Record())
	}

	if err := gocsv.MarshalFile(&records, file); err != nil {
		return fmt.Errorf("error writing CSV: %w", err)
	}

	return nil
}

// ReadCSVFile reads CSV data into a slice of structs using gocsv.
// TCSVRow is the struct type that maps to the CSV columns.
func ReadCSVFile[TCSVRow any](filePath string, logger logging.Logger) ([]TCSVRow, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	logger.WithField("file", filePath).Info("Reading CSV file")

	file, err := os.Open(filePath) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			logger.WithError(cerr).Warn("Failed to close file")
		}
	}()

	var rows []TCSVRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	logger.WithField("count", len(rows)).Info("Successfully read CSV data")
	return rows, nil
}
