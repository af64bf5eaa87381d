package processor

import (
	"context"
	"os"
	"testing"

	"fjacquet/stmt-ingest/internal/logging"
	"fjacquet/stmt-ingest/internal/parsererror"
	"fjacquet/stmt-ingest/internal/pdftext"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenericCanProcessAnything(t *testing.T) {
	p := NewGenericProcessor(&pdftext.MockTableExtractor{}, logging.NewMockLogger())

	assert.True(t, p.CanProcess("anything.pdf"))
	assert.True(t, p.CanProcess("unknown_bank_statement.pdf"))
}

func TestGenericExtractConcatenatesTables(t *testing.T) {
	tables := &pdftext.MockTableExtractor{
		MockTables: []pdftext.Table{
			{
				Header: []string{"Date", "Description", "Amount"},
				Rows: [][]string{
					{"01/05/2025", "COFFEE SHOP", "4.50"},
				},
			},
			{
				Header: []string{"Date", "Description", "Amount"},
				Rows: [][]string{
					{"01/07/2025", "GROCERY STORE", "62.10"},
				},
			},
		},
	}
	p := NewGenericProcessor(tables, logging.NewMockLogger())

	csvPath, err := p.Extract(context.Background(), "unknown_bank.pdf", t.TempDir())
	require.NoError(t, err)

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "Date,Description,Amount")
	assert.Contains(t, content, "01/05/2025,COFFEE SHOP,4.50")
	assert.Contains(t, content, "01/07/2025,GROCERY STORE,62.10")
}

func TestGenericExtractNoTables(t *testing.T) {
	p := NewGenericProcessor(&pdftext.MockTableExtractor{}, logging.NewMockLogger())

	_, err := p.Extract(context.Background(), "empty.pdf", t.TempDir())
	require.Error(t, err)

	var exErr *parsererror.ExtractionError
	require.ErrorAs(t, err, &exErr)
	assert.Equal(t, "generic", exErr.Processor)
	assert.Contains(t, exErr.Error(), "no tables found")
}

func TestCitiDelegatesToGeneric(t *testing.T) {
	tables := &pdftext.MockTableExtractor{
		MockTables: []pdftext.Table{
			{Header: []string{"Date", "Description", "Amount"}, Rows: [][]string{{"02/01/2025", "COSTCO WHSE", "120.00"}}},
		},
	}
	logger := logging.NewMockLogger()
	citi := NewCitiProcessor(NewGenericProcessor(tables, logger), logger)

	assert.True(t, citi.CanProcess("citi_doublecash_02_2025.pdf"))
	assert.True(t, citi.CanProcess("costco-visa-feb.pdf"))
	assert.True(t, citi.CanProcess("thankyou_card.pdf"))
	assert.False(t, citi.CanProcess("chase_freedom.pdf"))

	csvPath, err := citi.Extract(context.Background(), "citi_doublecash_02_2025.pdf", t.TempDir())
	require.NoError(t, err)

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "COSTCO WHSE")
}
