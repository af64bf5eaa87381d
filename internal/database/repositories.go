package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// AccountRepository reads and writes ledger accounts.
type AccountRepository struct {
	db DB
}

// NewAccountRepository creates an AccountRepository.
func NewAccountRepository(db DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create inserts an account and returns it with its assigned ID.
func (r *AccountRepository) Create(ctx context.Context, account Account) (Account, error) {
	query := `
		INSERT INTO accounts (name, account_type, institution, bank_name, card_name)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query,
		account.Name, account.AccountType, account.Institution,
		account.BankName, account.CardName,
	).Scan(&account.ID, &account.CreatedAt)
	if err != nil {
		return Account{}, fmt.Errorf("failed to create account: %w", err)
	}
	return account, nil
}

// GetByID returns the account with the given ID, or nil when absent.
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*Account, error) {
	query := `
		SELECT id, name, account_type, institution, bank_name, card_name, created_at
		FROM accounts
		WHERE id = $1
	`
	var account Account
	err := r.db.QueryRow(ctx, query, id).Scan(
		&account.ID, &account.Name, &account.AccountType,
		&account.Institution, &account.BankName, &account.CardName, &account.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account %d: %w", id, err)
	}
	return &account, nil
}

// GetByName returns the account with the given name, or nil when absent.
func (r *AccountRepository) GetByName(ctx context.Context, name string) (*Account, error) {
	query := `
		SELECT id, name, account_type, institution, bank_name, card_name, created_at
		FROM accounts
		WHERE name = $1
	`
	var account Account
	err := r.db.QueryRow(ctx, query, name).Scan(
		&account.ID, &account.Name, &account.AccountType,
		&account.Institution, &account.BankName, &account.CardName, &account.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account %q: %w", name, err)
	}
	return &account, nil
}

// TransactionRepository reads and writes ledger transactions.
type TransactionRepository struct {
	db DB
}

// NewTransactionRepository creates a TransactionRepository.
func NewTransactionRepository(db DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// BulkInsert inserts transactions inside one database transaction, skipping
// rows whose transaction_hash already exists. It returns the number of rows
// inserted and the number skipped as duplicates.
func (r *TransactionRepository) BulkInsert(ctx context.Context, transactions []Transaction) (inserted, skipped int, err error) {
	if len(transactions) == 0 {
		return 0, 0, nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	query := `
		INSERT INTO transactions (
			account_id, transaction_date, posting_date, description,
			amount, balance, transaction_type, transaction_hash, category_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (transaction_hash) DO NOTHING
	`
	for _, t := range transactions {
		tag, execErr := tx.Exec(ctx, query,
			t.AccountID, t.TransactionDate, t.PostingDate, t.Description,
			t.Amount, t.Balance, t.TransactionType, t.TransactionHash, t.CategoryID,
		)
		if execErr != nil {
			err = fmt.Errorf("failed to insert transaction: %w", execErr)
			return 0, 0, err
		}
		if tag.RowsAffected() == 0 {
			skipped++
		} else {
			inserted++
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, 0, fmt.Errorf("failed to commit transactions: %w", err)
	}
	return inserted, skipped, nil
}

// GetByHash returns the transaction with the given hash, or nil when absent.
func (r *TransactionRepository) GetByHash(ctx context.Context, hash string) (*Transaction, error) {
	query := `
		SELECT id, account_id, transaction_date, posting_date, description,
		       amount, balance, transaction_type, transaction_hash, category_id, created_at
		FROM transactions
		WHERE transaction_hash = $1
	`
	var t Transaction
	err := r.db.QueryRow(ctx, query, hash).Scan(
		&t.ID, &t.AccountID, &t.TransactionDate, &t.PostingDate, &t.Description,
		&t.Amount, &t.Balance, &t.TransactionType, &t.TransactionHash, &t.CategoryID, &t.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction by hash: %w", err)
	}
	return &t, nil
}

// ListByAccount returns the account's transactions within [start, end].
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID int64, start, end time.Time) ([]Transaction, error) {
	query := `
		SELECT id, account_id, transaction_date, posting_date, description,
		       amount, balance, transaction_type, transaction_hash, category_id, created_at
		FROM transactions
		WHERE account_id = $1 AND transaction_date >= $2 AND transaction_date <= $3
		ORDER BY transaction_date, id
	`
	rows, err := r.db.Query(ctx, query, accountID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []Transaction
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(
			&t.ID, &t.AccountID, &t.TransactionDate, &t.PostingDate, &t.Description,
			&t.Amount, &t.Balance, &t.TransactionType, &t.TransactionHash, &t.CategoryID, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

// ImportLogRepository records which source files have been ingested.
type ImportLogRepository struct {
	db DB
}

// NewImportLogRepository creates an ImportLogRepository.
func NewImportLogRepository(db DB) *ImportLogRepository {
	return &ImportLogRepository{db: db}
}

// Create inserts an import log entry and returns it with its assigned ID.
func (r *ImportLogRepository) Create(ctx context.Context, log ImportLog) (ImportLog, error) {
	query := `
		INSERT INTO import_logs (filename, file_hash, status, records_imported, records_skipped, error_message)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, import_date
	`
	err := r.db.QueryRow(ctx, query,
		log.Filename, log.FileHash, log.Status,
		log.RecordsImported, log.RecordsSkipped, log.ErrorMessage,
	).Scan(&log.ID, &log.ImportDate)
	if err != nil {
		return ImportLog{}, fmt.Errorf("failed to create import log: %w", err)
	}
	return log, nil
}

// GetByFileHash returns the import log for a file hash, or nil when the file
// has never been imported.
func (r *ImportLogRepository) GetByFileHash(ctx context.Context, fileHash string) (*ImportLog, error) {
	query := `
		SELECT id, filename, file_hash, import_date, status, records_imported, records_skipped, error_message
		FROM import_logs
		WHERE file_hash = $1
	`
	var log ImportLog
	err := r.db.QueryRow(ctx, query, fileHash).Scan(
		&log.ID, &log.Filename, &log.FileHash, &log.ImportDate,
		&log.Status, &log.RecordsImported, &log.RecordsSkipped, &log.ErrorMessage,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get import log: %w", err)
	}
	return &log, nil
}
