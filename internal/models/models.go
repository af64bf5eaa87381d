// Package models provides the data structures used throughout the application.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayoutISO is the wire format for transaction dates in produced CSV files.
const DateLayoutISO = "2006-01-02"

// ParsedTransaction is one normalized transaction extracted from a statement.
// Amount is always a non-negative magnitude quantized to two decimal places;
// sign information lives only in Type.
type ParsedTransaction struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Type        string
}

// IsDebit returns true if the transaction is a charge (outgoing money).
func (t ParsedTransaction) IsDebit() bool {
	return t.Type == TransactionTypeDebit
}

// IsCredit returns true if the transaction is a payment or refund.
func (t ParsedTransaction) IsCredit() bool {
	return t.Type == TransactionTypeCredit
}

// Key returns the tuple identity used for duplicate suppression within one
// extraction pass: a page header repeated in a footer must collapse to one row.
func (t ParsedTransaction) Key() string {
	return t.Date.Format(DateLayoutISO) + "|" + t.Description + "|" + t.Amount.StringFixed(2)
}

// Record converts the transaction to its CSV row representation.
func (t ParsedTransaction) Record() TransactionRecord {
	return TransactionRecord{
		TransactionDate: t.Date.Format(DateLayoutISO),
		Description:     t.Description,
		Amount:          t.Amount.StringFixed(2),
		TransactionType: t.Type,
	}
}

// TransactionRecord is the gocsv row struct for the produced CSV schema.
type TransactionRecord struct {
	TransactionDate string `csv:"transaction_date"`
	Description     string `csv:"description"`
	Amount          string `csv:"amount"`
	TransactionType string `csv:"transaction_type"`
}

// NewTransaction builds a ParsedTransaction from a signed amount token as it
// appears on a statement line. A leading minus denotes a payment or credit;
// the stored amount is always the absolute magnitude. Thousands separators
// are stripped before parsing.
func NewTransaction(date time.Time, description, amountStr string) (ParsedTransaction, error) {
	amountStr = strings.TrimSpace(amountStr)
	isCredit := strings.HasPrefix(amountStr, "-")

	amount, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimPrefix(amountStr, "-"), ",", ""))
	if err != nil {
		return ParsedTransaction{}, fmt.Errorf("invalid amount %q: %w", amountStr, err)
	}

	txType := TransactionTypeDebit
	if isCredit {
		txType = TransactionTypeCredit
	}

	return ParsedTransaction{
		Date:        date,
		Description: CleanDescription(description),
		Amount:      amount.Round(2),
		Type:        txType,
	}, nil
}

// CleanDescription collapses whitespace runs to single spaces and trims the ends.
func CleanDescription(description string) string {
	return strings.Join(strings.Fields(description), " ")
}

// DedupeTransactions collapses exact (date, description, amount) duplicates,
// preserving first-seen order.
func DedupeTransactions(transactions []ParsedTransaction) []ParsedTransaction {
	seen := make(map[string]bool, len(transactions))
	unique := make([]ParsedTransaction, 0, len(transactions))
	for _, t := range transactions {
		key := t.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, t)
	}
	return unique
}
