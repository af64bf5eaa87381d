package csvparser

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/stmt-ingest/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestParseBankExport(t *testing.T) {
	path := writeFile(t, "Date,Description,Amount\n"+
		"03/18/2024,THE UPS STORE,-21.62\n"+
		"03/20/2024,\"PAYMENT, THANK YOU\",\"$1,000.00\"\n")

	p := New(logging.NewMockLogger())
	transactions, err := p.Parse(path)
	require.NoError(t, err)
	require.Len(t, transactions, 2)

	// Negative export amounts are charges
	assert.Equal(t, "2024-03-18", transactions[0].Date.Format("2006-01-02"))
	assert.Equal(t, "DEBIT", transactions[0].Type)
	assert.Equal(t, "21.62", transactions[0].Amount.StringFixed(2))

	// Positive amounts are payments; currency symbols and separators stripped
	assert.Equal(t, "CREDIT", transactions[1].Type)
	assert.Equal(t, "1000.00", transactions[1].Amount.StringFixed(2))
	assert.Equal(t, "PAYMENT, THANK YOU", transactions[1].Description)
}

func TestParseSkipsUnparseableDates(t *testing.T) {
	path := writeFile(t, "Date,Description,Amount\n"+
		"Pending,NOT POSTED YET,-5.00\n"+
		"2024-03-18,ISO DATE ROW,-10.00\n")

	logger := logging.NewMockLogger()
	p := New(logger)
	transactions, err := p.Parse(path)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, "ISO DATE ROW", transactions[0].Description)
	assert.True(t, logger.HasMessage("warn", "unparseable date"))
}

func TestParseInvalidAmount(t *testing.T) {
	path := writeFile(t, "Date,Description,Amount\n03/18/2024,BROKEN,abc\n")

	p := New(logging.NewMockLogger())
	_, err := p.Parse(path)
	assert.Error(t, err)
}

func TestParseProduced(t *testing.T) {
	path := writeFile(t, "transaction_date,description,amount,transaction_type\n"+
		"2024-03-18,AplPay THE UPS STORE,21.62,DEBIT\n"+
		"2024-04-02,MOBILE PAYMENT,250.00,CREDIT\n")

	p := New(logging.NewMockLogger())
	transactions, err := p.ParseProduced(path)
	require.NoError(t, err)
	require.Len(t, transactions, 2)
	assert.Equal(t, "DEBIT", transactions[0].Type)
	assert.Equal(t, "21.62", transactions[0].Amount.StringFixed(2))
	assert.Equal(t, "CREDIT", transactions[1].Type)
}

func TestParseProducedRejectsBadType(t *testing.T) {
	path := writeFile(t, "transaction_date,description,amount,transaction_type\n"+
		"2024-03-18,STORE,21.62,REFUND\n")

	p := New(logging.NewMockLogger())
	_, err := p.ParseProduced(path)
	assert.Error(t, err)
}

func TestParseFilename(t *testing.T) {
	tests := []struct {
		path string
		want FilenameInfo
	}{
		{
			path: "chase_freedom_03_2025.pdf",
			want: FilenameInfo{BankName: "Chase", CardName: "Freedom", Month: "03", Year: "2025"},
		},
		{
			path: "statements/amex_platinum_04_2025.csv",
			want: FilenameInfo{BankName: "Amex", CardName: "Platinum", Month: "04", Year: "2025"},
		},
		{
			path: "discover_it.pdf",
			want: FilenameInfo{BankName: "Discover", CardName: "It"},
		},
		{
			path: "statement.pdf",
			want: FilenameInfo{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseFilename(tt.path))
		})
	}
}
