package orchestrator

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"fjacquet/stmt-ingest/internal/csvparser"
	"fjacquet/stmt-ingest/internal/database"
	"fjacquet/stmt-ingest/internal/hasher"
	"fjacquet/stmt-ingest/internal/logging"
	"fjacquet/stmt-ingest/internal/models"
)

// IngestSummary reports the outcome of one file ingestion.
type IngestSummary struct {
	Status   string
	Imported int
	Skipped  int
}

// Ingestor loads parsed CSV transactions into the ledger, deduplicating by
// transaction hash and recording each source file in the import log.
type Ingestor struct {
	parser       *csvparser.Parser
	accounts     *database.AccountRepository
	transactions *database.TransactionRepository
	importLogs   *database.ImportLogRepository
	logger       logging.Logger
}

// NewIngestor wires the ingestion flow together.
func NewIngestor(parser *csvparser.Parser, accounts *database.AccountRepository,
	transactions *database.TransactionRepository, importLogs *database.ImportLogRepository,
	logger logging.Logger) *Ingestor {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Ingestor{
		parser:       parser,
		accounts:     accounts,
		transactions: transactions,
		importLogs:   importLogs,
		logger:       logger,
	}
}

// IngestCSV imports one CSV file into the given account. A file whose hash
// is already in the import log is skipped, not re-imported. Duplicate
// transactions within a new file are skipped row by row via the hash
// uniqueness constraint.
func (g *Ingestor) IngestCSV(ctx context.Context, csvPath string, accountID int64, dryRun bool) (IngestSummary, error) {
	log := g.logger.WithField("file", filepath.Base(csvPath))

	account, err := g.accounts.GetByID(ctx, accountID)
	if err != nil {
		return IngestSummary{}, err
	}
	if account == nil {
		return IngestSummary{}, fmt.Errorf("account %d does not exist", accountID)
	}

	fileHash, err := hasher.FileHash(csvPath)
	if err != nil {
		return IngestSummary{}, err
	}

	existing, err := g.importLogs.GetByFileHash(ctx, fileHash)
	if err != nil {
		return IngestSummary{}, err
	}
	if existing != nil {
		log.WithField("previous_import", existing.ImportDate).Info("File already imported; skipping")
		return IngestSummary{Status: models.ImportStatusSkipped}, nil
	}

	transactions, err := g.parseFile(csvPath)
	if err != nil {
		g.recordFailure(ctx, csvPath, fileHash, err)
		return IngestSummary{}, err
	}

	rows := make([]database.Transaction, 0, len(transactions))
	for _, t := range transactions {
		rows = append(rows, database.Transaction{
			AccountID:       accountID,
			TransactionDate: t.Date,
			Description:     t.Description,
			Amount:          t.Amount,
			TransactionType: t.Type,
			TransactionHash: hasher.TransactionHash(accountID, t.Date, t.Amount, t.Description),
		})
	}

	if dryRun {
		log.WithField("count", len(rows)).Info("Dry run: would import transactions")
		return IngestSummary{Status: models.ImportStatusCompleted, Imported: len(rows)}, nil
	}

	imported, skipped, err := g.transactions.BulkInsert(ctx, rows)
	if err != nil {
		g.recordFailure(ctx, csvPath, fileHash, err)
		return IngestSummary{}, err
	}

	if _, err := g.importLogs.Create(ctx, database.ImportLog{
		Filename:        filepath.Base(csvPath),
		FileHash:        fileHash,
		Status:          models.ImportStatusCompleted,
		RecordsImported: imported,
		RecordsSkipped:  skipped,
	}); err != nil {
		return IngestSummary{}, err
	}

	log.WithFields(
		logging.Field{Key: "imported", Value: imported},
		logging.Field{Key: "skipped", Value: skipped},
	).Info("File ingested")
	return IngestSummary{Status: models.ImportStatusCompleted, Imported: imported, Skipped: skipped}, nil
}

// parseFile picks the right CSV reader: files in the produced statement
// schema use the strict parser, bank exports use the tolerant one.
func (g *Ingestor) parseFile(csvPath string) ([]models.ParsedTransaction, error) {
	transactions, err := g.parser.ParseProduced(csvPath)
	if err == nil {
		return transactions, nil
	}
	if strings.Contains(err.Error(), "failed to read CSV") {
		return nil, err
	}
	return g.parser.Parse(csvPath)
}

func (g *Ingestor) recordFailure(ctx context.Context, csvPath, fileHash string, cause error) {
	message := cause.Error()
	if _, err := g.importLogs.Create(ctx, database.ImportLog{
		Filename:     filepath.Base(csvPath),
		FileHash:     fileHash,
		Status:       models.ImportStatusFailed,
		ErrorMessage: &message,
	}); err != nil {
		g.logger.WithError(err).Warn("Failed to record import failure")
	}
}
