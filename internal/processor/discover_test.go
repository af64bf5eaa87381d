package processor

import (
	"context"
	"os"
	"testing"

	"fjacquet/stmt-ingest/internal/logging"
	"fjacquet/stmt-ingest/internal/pdftext"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverCanProcess(t *testing.T) {
	p := NewDiscoverProcessor(pdftext.NewMockExtractor(nil, nil), logging.NewMockLogger())

	assert.True(t, p.CanProcess("discover_it_01_2025.pdf"))
	assert.True(t, p.CanProcess("Discover-Statement.pdf"))
	assert.False(t, p.CanProcess("chase_freedom.pdf"))
}

func TestParseDiscoverLine(t *testing.T) {
	t.Run("line with category word", func(t *testing.T) {
		tx, ok := parseDiscoverLine("12/02/25 12/02/25 KATE SPADE 33224 SANTA CLARA CA $ 195.78 Merchandise")
		require.True(t, ok)
		assert.Equal(t, "2025-12-02", tx.Date.Format("2006-01-02"))
		assert.Equal(t, "KATE SPADE 33224 SANTA CLARA CA", tx.Description)
		assert.Equal(t, "195.78", tx.Amount.StringFixed(2))
		assert.Equal(t, "DEBIT", tx.Type)
		assert.NotContains(t, tx.Description, "Merchandise")
	})

	t.Run("line without category word", func(t *testing.T) {
		tx, ok := parseDiscoverLine("01/15/25 01/16/25 INTERNET PAYMENT - THANK YOU $ -500.00")
		require.True(t, ok)
		assert.Equal(t, "2025-01-15", tx.Date.Format("2006-01-02"))
		assert.Equal(t, "INTERNET PAYMENT - THANK YOU", tx.Description)
		assert.Equal(t, "CREDIT", tx.Type)
		assert.Equal(t, "500.00", tx.Amount.StringFixed(2))
	})

	t.Run("transaction date wins over posting date", func(t *testing.T) {
		tx, ok := parseDiscoverLine("03/30/25 04/01/25 GROCERY OUTLET PHOENIX AZ $ 42.10 Supermarkets")
		require.True(t, ok)
		assert.Equal(t, "2025-03-30", tx.Date.Format("2006-01-02"))
	})

	t.Run("single-date line is noise", func(t *testing.T) {
		_, ok := parseDiscoverLine("12/02/25 KATE SPADE $ 195.78 Merchandise")
		assert.False(t, ok)
	})

	t.Run("line without dollar amount is noise", func(t *testing.T) {
		_, ok := parseDiscoverLine("12/02/25 12/02/25 See reverse for details")
		assert.False(t, ok)
	})

	t.Run("impossible date is noise", func(t *testing.T) {
		_, ok := parseDiscoverLine("13/45/25 13/45/25 BAD DATE $ 10.00 Misc")
		assert.False(t, ok)
	})
}

func TestDiscoverExtract(t *testing.T) {
	pages := []string{
		"DISCOVER IT CARD\n" +
			"12/02/25 12/02/25 KATE SPADE 33224 SANTA CLARA CA $ 195.78 Merchandise\n" +
			"12/05/25 12/06/25 TRADER JOES PHOENIX AZ $ 64.20 Supermarkets\n",
	}
	p := NewDiscoverProcessor(pdftext.NewMockExtractor(pages, nil), logging.NewMockLogger())

	csvPath, err := p.Extract(context.Background(), "discover_it_12_2025.pdf", t.TempDir())
	require.NoError(t, err)

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "2025-12-02,KATE SPADE 33224 SANTA CLARA CA,195.78,DEBIT")
	assert.Contains(t, content, "2025-12-05,TRADER JOES PHOENIX AZ,64.20,DEBIT")
	assert.NotContains(t, content, "Merchandise")
}
