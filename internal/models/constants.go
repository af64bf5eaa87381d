package models

// Transaction types
const (
	TransactionTypeDebit  = "DEBIT"
	TransactionTypeCredit = "CREDIT"
)

// Import log statuses
const (
	ImportStatusCompleted = "COMPLETED"
	ImportStatusSkipped   = "SKIPPED"
	ImportStatusFailed    = "FAILED"
)

// RequiredColumns are the column names every produced CSV must carry,
// in output order.
var RequiredColumns = []string{"transaction_date", "description", "amount", "transaction_type"}

// File permissions
const (
	PermissionOutputFile = 0600
	PermissionDirectory  = 0750
)
