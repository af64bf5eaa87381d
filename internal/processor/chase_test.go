package processor

import (
	"context"
	"os"
	"testing"
	"time"

	"fjacquet/stmt-ingest/internal/logging"
	"fjacquet/stmt-ingest/internal/pdftext"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChaseCanProcess(t *testing.T) {
	p := NewChaseProcessor(pdftext.NewMockExtractor(nil, nil), logging.NewMockLogger())

	assert.True(t, p.CanProcess("chase_freedom_03_2025.pdf"))
	assert.True(t, p.CanProcess("Sapphire-Reserve.pdf"))
	assert.True(t, p.CanProcess("primevisa_12_2024.pdf"))
	assert.False(t, p.CanProcess("amex_platinum.pdf"))
}

func TestParseChaseLine(t *testing.T) {
	t.Run("charge line", func(t *testing.T) {
		tx, ok := parseChaseLine("12/08 LYFT *RIDE SUN 4AM HELP.LYFT.COM CA 105.94", 2024)
		require.True(t, ok)
		assert.Equal(t, "2024-12-08", tx.Date.Format("2006-01-02"))
		assert.Equal(t, "LYFT *RIDE SUN 4AM HELP.LYFT.COM CA", tx.Description)
		assert.Equal(t, "105.94", tx.Amount.StringFixed(2))
		assert.Equal(t, "DEBIT", tx.Type)
	})

	t.Run("payment line with negative amount", func(t *testing.T) {
		tx, ok := parseChaseLine("11/24 Payment Thank You-Mobile -4,000.00", 2024)
		require.True(t, ok)
		assert.Equal(t, "2024-11-24", tx.Date.Format("2006-01-02"))
		assert.Equal(t, "CREDIT", tx.Type)
		assert.Equal(t, "4000.00", tx.Amount.StringFixed(2))
	})

	t.Run("irregular spacing is collapsed", func(t *testing.T) {
		tx, ok := parseChaseLine("03/02  WHOLEFDS   TPE 10261  TEMPE AZ   55.03", 2025)
		require.True(t, ok)
		assert.Equal(t, "WHOLEFDS TPE 10261 TEMPE AZ", tx.Description)
		assert.Equal(t, "55.03", tx.Amount.StringFixed(2))
	})

	t.Run("summary line without amount is noise", func(t *testing.T) {
		_, ok := parseChaseLine("12/08 PAYMENT DUE DATE", 2024)
		assert.False(t, ok)
	})

	t.Run("line without date anchor is noise", func(t *testing.T) {
		_, ok := parseChaseLine("Previous balance 1,203.44", 2024)
		assert.False(t, ok)
	})
}

func TestYearFromFilename(t *testing.T) {
	fixedNow := func() time.Time { return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC) }

	assert.Equal(t, 2024, yearFromFilename("chase_freedom_03_2024.pdf", fixedNow))
	assert.Equal(t, 2025, yearFromFilename("statements/chase_2025.pdf", fixedNow))
	assert.Equal(t, 2026, yearFromFilename("chase_freedom.pdf", fixedNow))
	// A 4-digit token outside 20xx does not match the year pattern
	assert.Equal(t, 2026, yearFromFilename("chase_1999.pdf", fixedNow))
}

func TestChaseExtractUsesFilenameYear(t *testing.T) {
	pages := []string{
		"CHASE FREEDOM\n12/08 LYFT *RIDE SUN 4AM HELP.LYFT.COM CA 105.94\n11/24 Payment Thank You-Mobile -4,000.00\n",
	}
	p := NewChaseProcessor(pdftext.NewMockExtractor(pages, nil), logging.NewMockLogger())

	csvPath, err := p.Extract(context.Background(), "chase_freedom_12_2024.pdf", t.TempDir())
	require.NoError(t, err)

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "2024-12-08,LYFT *RIDE SUN 4AM HELP.LYFT.COM CA,105.94,DEBIT")
	assert.Contains(t, content, "2024-11-24,Payment Thank You-Mobile,4000.00,CREDIT")
}
