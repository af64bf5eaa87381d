// Package hasher derives deterministic identities for transactions and files.
package hasher

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"fjacquet/stmt-ingest/internal/dateutils"

	"github.com/shopspring/decimal"
)

// TransactionHash computes the deduplication hash for a transaction. The hash
// covers the account, the ISO date, the amount with exactly two decimal
// places, and the description lowercased with whitespace collapsed, so the
// same transaction hashes identically regardless of formatting noise in the
// source statement.
func TransactionHash(accountID int64, date time.Time, amount decimal.Decimal, description string) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(description), " "))
	payload := fmt.Sprintf("%d|%s|%s|%s",
		accountID,
		dateutils.ToISODate(date),
		amount.StringFixed(2),
		normalized,
	)
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// FileHash computes the SHA-256 of a file's contents, used to detect
// re-imports of the same source file.
func FileHash(path string) (string, error) {
	file, err := os.Open(path) // #nosec G304 -- caller supplies the import file path
	if err != nil {
		return "", fmt.Errorf("failed to open file for hashing: %w", err)
	}
	defer file.Close()

	h := sha256.New()
	if _, err := io.Copy(h, file); err != nil {
		return "", fmt.Errorf("failed to hash file %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
