package hasher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionHashDeterministic(t *testing.T) {
	date := time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC)
	amount := decimal.NewFromFloat(21.62)

	h1 := TransactionHash(1, date, amount, "THE UPS STORE")
	h2 := TransactionHash(1, date, amount, "THE UPS STORE")
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)
}

func TestTransactionHashNormalizesDescription(t *testing.T) {
	date := time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC)
	amount := decimal.NewFromFloat(21.62)

	// Case and whitespace differences must not change identity
	h1 := TransactionHash(1, date, amount, "Foo  Bar")
	h2 := TransactionHash(1, date, amount, "foo bar")
	h3 := TransactionHash(1, date, amount, "  FOO   BAR  ")
	assert.Equal(t, h1, h2)
	assert.Equal(t, h1, h3)
}

func TestTransactionHashDistinguishesFields(t *testing.T) {
	date := time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC)
	amount := decimal.NewFromFloat(21.62)
	base := TransactionHash(1, date, amount, "THE UPS STORE")

	assert.NotEqual(t, base, TransactionHash(2, date, amount, "THE UPS STORE"))
	assert.NotEqual(t, base, TransactionHash(1, date.AddDate(0, 0, 1), amount, "THE UPS STORE"))
	assert.NotEqual(t, base, TransactionHash(1, date, decimal.NewFromFloat(21.63), "THE UPS STORE"))
	assert.NotEqual(t, base, TransactionHash(1, date, amount, "OTHER STORE"))
}

func TestTransactionHashAmountScale(t *testing.T) {
	date := time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC)

	// 21.6 and 21.60 are the same money and must hash identically
	h1 := TransactionHash(1, date, decimal.RequireFromString("21.6"), "STORE")
	h2 := TransactionHash(1, date, decimal.RequireFromString("21.60"), "STORE")
	assert.Equal(t, h1, h2)
}

func TestFileHash(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "statement.csv")
	require.NoError(t, os.WriteFile(path, []byte("some,csv,content\n"), 0600))

	h1, err := FileHash(path)
	require.NoError(t, err)
	assert.Len(t, h1, 64)

	h2, err := FileHash(path)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)

	other := filepath.Join(dir, "other.csv")
	require.NoError(t, os.WriteFile(other, []byte("different content\n"), 0600))
	h3, err := FileHash(other)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)
}

func TestFileHashMissingFile(t *testing.T) {
	_, err := FileHash(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}
