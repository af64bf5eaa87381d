// Package ingest loads parsed CSV transactions into the ledger database.
package ingest

import (
	"context"

	"fjacquet/stmt-ingest/cmd/root"
	"fjacquet/stmt-ingest/internal/csvparser"
	"fjacquet/stmt-ingest/internal/database"
	"fjacquet/stmt-ingest/internal/fileutils"
	"fjacquet/stmt-ingest/internal/logging"
	"fjacquet/stmt-ingest/internal/models"
	"fjacquet/stmt-ingest/internal/orchestrator"
	"fjacquet/stmt-ingest/internal/store"

	"github.com/spf13/cobra"
)

var (
	filePath    string
	accountID   int64
	accountName string
)

// Cmd represents the ingest command
var Cmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest a CSV file of transactions into the ledger",
	Long: `Ingest a CSV file into the PostgreSQL ledger. Transactions already in the
ledger (same account, date, amount, and description) are skipped via their
hash; a file whose content hash is already in the import log is skipped
entirely.

The target account is given by --account-id, or by --account to look the
ID up in the accounts registry.

Example:
  stmt-ingest ingest --file data/csvs/chase_freedom_03_2025.csv --account-id 1`,
	Run: ingestFunc,
}

func init() {
	Cmd.Flags().StringVarP(&filePath, "file", "f", "", "CSV file to ingest (required)")
	Cmd.Flags().Int64Var(&accountID, "account-id", 0, "Ledger account ID to import into")
	Cmd.Flags().StringVar(&accountName, "account", "", "Account name to look up in the accounts registry")
	_ = Cmd.MarkFlagRequired("file")
}

func ingestFunc(cmd *cobra.Command, args []string) {
	logger := root.Log
	cfg := root.Cfg

	if !fileutils.FileExists(filePath) {
		logger.Fatalf("File does not exist: %s", filePath)
	}
	if cfg.Database.URL == "" {
		logger.Fatal("No database configured; set STMT_DATABASE_URL or DATABASE_URL")
	}

	id := accountID
	if id == 0 {
		if accountName == "" {
			logger.Fatal("Either --account-id or --account is required")
		}
		accounts := store.NewAccountStore(cfg.Accounts.File, logger)
		account, found, err := accounts.FindByName(accountName)
		if err != nil {
			logger.Fatalf("Failed to read accounts registry: %v", err)
		}
		if !found {
			logger.Fatalf("Account %q not found in the accounts registry", accountName)
		}
		id = account.AccountID
	}

	ctx := context.Background()
	pool, err := database.NewPool(ctx, cfg.Database.URL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := database.Migrate(cfg.Database.URL); err != nil {
		logger.Fatalf("Failed to apply database migrations: %v", err)
	}

	ingestor := orchestrator.NewIngestor(
		csvparser.New(logger),
		database.NewAccountRepository(pool),
		database.NewTransactionRepository(pool),
		database.NewImportLogRepository(pool),
		logger,
	)

	summary, err := ingestor.IngestCSV(ctx, filePath, id, root.DryRun)
	if err != nil {
		logger.Fatalf("Ingestion failed: %v", err)
	}

	if summary.Status == models.ImportStatusSkipped {
		logger.Info("File already imported; nothing to do")
		return
	}
	logger.Info("Ingestion finished",
		logging.Field{Key: "imported", Value: summary.Imported},
		logging.Field{Key: "skipped", Value: summary.Skipped})
}
