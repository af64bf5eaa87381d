package processor

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/stmt-ingest/internal/logging"
	"fjacquet/stmt-ingest/internal/parsererror"
	"fjacquet/stmt-ingest/internal/pdftext"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmexCanProcess(t *testing.T) {
	p := NewAmexProcessor(pdftext.NewMockExtractor(nil, nil), logging.NewMockLogger())

	assert.True(t, p.CanProcess("amex_platinum_04_2025.pdf"))
	assert.True(t, p.CanProcess("statements/American-Express-March.pdf"))
	assert.True(t, p.CanProcess("BLUECASH_2024.pdf"))
	assert.False(t, p.CanProcess("chase_freedom_03_2025.pdf"))
}

func TestParseAmexLine(t *testing.T) {
	t.Run("line with merged month token and B/P marker", func(t *testing.T) {
		tx, ok := parseAmexLine("03/18/2024 April AplPay THE UPS STORETEMPE AZ 21.62 B/P")
		require.True(t, ok)
		assert.Equal(t, "2024-03-18", tx.Date.Format("2006-01-02"))
		assert.Equal(t, "AplPay THE UPS STORETEMPE AZ", tx.Description)
		assert.Equal(t, "21.62", tx.Amount.StringFixed(2))
		assert.Equal(t, "DEBIT", tx.Type)
	})

	t.Run("payment line with negative amount", func(t *testing.T) {
		tx, ok := parseAmexLine("04/02/2024 MOBILE PAYMENT - THANK YOU -250.00")
		require.True(t, ok)
		assert.Equal(t, "CREDIT", tx.Type)
		assert.Equal(t, "250.00", tx.Amount.StringFixed(2))
	})

	t.Run("line without date anchor is noise", func(t *testing.T) {
		_, ok := parseAmexLine("Total for this period 1,234.00")
		assert.False(t, ok)
	})

	t.Run("line without amount is noise", func(t *testing.T) {
		_, ok := parseAmexLine("03/18/2024 Continued on next page")
		assert.False(t, ok)
	})

	t.Run("line with only date and amount is noise", func(t *testing.T) {
		_, ok := parseAmexLine("03/18/2024 21.62")
		assert.False(t, ok)
	})
}

func TestAmexExtract(t *testing.T) {
	pages := []string{
		"AMERICAN EXPRESS\nAccount Summary\n" +
			"03/18/2024 April AplPay THE UPS STORETEMPE AZ 21.62 B/P\n" +
			"03/20/2024 WHOLEFDS TEMPE AZ 88.11\n",
		// Page footer repeats a transaction row
		"03/20/2024 WHOLEFDS TEMPE AZ 88.11\n" +
			"04/02/2024 MOBILE PAYMENT - THANK YOU -250.00\n",
	}
	p := NewAmexProcessor(pdftext.NewMockExtractor(pages, nil), logging.NewMockLogger())

	outputDir := t.TempDir()
	csvPath, err := p.Extract(context.Background(), "amex_platinum_04_2024.pdf", outputDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outputDir, "amex_platinum_04_2024.csv"), csvPath)

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "transaction_date,description,amount,transaction_type")
	assert.Contains(t, content, "2024-03-18,AplPay THE UPS STORETEMPE AZ,21.62,DEBIT")
	assert.Contains(t, content, "2024-04-02,MOBILE PAYMENT - THANK YOU,250.00,CREDIT")
	// The repeated footer row must collapse to one occurrence
	assert.Equal(t, 1, strings.Count(content, "2024-03-20,WHOLEFDS TEMPE AZ,88.11,DEBIT"))
}

func TestAmexExtractNoTransactions(t *testing.T) {
	p := NewAmexProcessor(pdftext.NewMockExtractor([]string{"Just a cover letter"}, nil), logging.NewMockLogger())

	_, err := p.Extract(context.Background(), "amex.pdf", t.TempDir())
	require.Error(t, err)

	var exErr *parsererror.ExtractionError
	require.ErrorAs(t, err, &exErr)
	assert.Equal(t, "amex", exErr.Processor)
	assert.Contains(t, exErr.Error(), "no transactions found")
}

func TestAmexExtractExtractorFailure(t *testing.T) {
	p := NewAmexProcessor(pdftext.NewMockExtractor(nil, os.ErrNotExist), logging.NewMockLogger())

	_, err := p.Extract(context.Background(), "amex.pdf", t.TempDir())
	var exErr *parsererror.ExtractionError
	require.ErrorAs(t, err, &exErr)
	assert.Contains(t, exErr.Reason, "text extraction failed")
}
