// Package database provides the PostgreSQL ledger: connection management,
// schema migrations, and repositories for accounts, transactions, and
// import logs.
package database

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a ledger account that statements are imported into.
type Account struct {
	ID          int64
	Name        string
	AccountType string
	Institution string
	BankName    string
	CardName    string
	CreatedAt   time.Time
}

// Transaction is one ledger row. TransactionHash is unique across the table
// and is the deduplication key for repeated imports.
type Transaction struct {
	ID              int64
	AccountID       int64
	TransactionDate time.Time
	PostingDate     *time.Time
	Description     string
	Amount          decimal.Decimal
	Balance         *decimal.Decimal
	TransactionType string
	TransactionHash string
	CategoryID      *int64
	CreatedAt       time.Time
}

// ImportLog records one ingestion of a source file. FileHash is unique: the
// same file content is never imported twice.
type ImportLog struct {
	ID              int64
	Filename        string
	FileHash        string
	ImportDate      time.Time
	Status          string
	RecordsImported int
	RecordsSkipped  int
	ErrorMessage    *string
}
