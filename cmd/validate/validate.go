// Package validate checks produced CSV files against the output schema.
package validate

import (
	"errors"

	"fjacquet/stmt-ingest/cmd/root"
	"fjacquet/stmt-ingest/internal/fileutils"
	"fjacquet/stmt-ingest/internal/parsererror"
	"fjacquet/stmt-ingest/internal/validator"

	"github.com/spf13/cobra"
)

// Cmd represents the validate command
var Cmd = &cobra.Command{
	Use:   "validate <csv-file>...",
	Short: "Validate CSV files against the transaction schema",
	Long: `Validate one or more CSV files against the output schema: required
columns present, dates parseable, amounts with at most two decimal places,
and transaction types DEBIT or CREDIT. All problems in a file are reported,
not just the first.

Example:
  stmt-ingest validate data/csvs/*.csv`,
	Args: cobra.MinimumNArgs(1),
	Run:  validateFunc,
}

func validateFunc(cmd *cobra.Command, args []string) {
	logger := root.Log
	v := validator.New(logger)

	failed := 0
	for _, path := range args {
		if !fileutils.FileExists(path) {
			logger.WithField("file", path).Error("File does not exist")
			failed++
			continue
		}

		err := v.Validate(path)
		if err == nil {
			logger.WithField("file", path).Info("Valid")
			continue
		}

		failed++
		var vErr *parsererror.ValidationError
		if errors.As(err, &vErr) {
			for _, problem := range vErr.Problems {
				logger.WithField("file", path).Warn(problem)
			}
		} else {
			logger.WithField("file", path).WithError(err).Error("Validation failed")
		}
	}

	if failed > 0 {
		logger.Fatalf("%d file(s) failed validation", failed)
	}
}
