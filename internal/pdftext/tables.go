package pdftext

import (
	"regexp"
	"strings"
)

// Table is one detected table: a header row plus data rows.
type Table struct {
	Header []string
	Rows   [][]string
}

// TableExtractor detects tables in a PDF document. The generic processor
// concatenates every detected table across all pages into one row sequence.
type TableExtractor interface {
	ExtractTables(pdfPath string) ([]Table, error)
}

// MockTableExtractor implements TableExtractor for testing purposes.
type MockTableExtractor struct {
	MockTables []Table
	MockErr    error
}

// ExtractTables returns the predefined mock tables or error.
func (e *MockTableExtractor) ExtractTables(pdfPath string) ([]Table, error) {
	if e.MockErr != nil {
		return nil, e.MockErr
	}
	return e.MockTables, nil
}

// LayoutTableExtractor detects tables from extracted page text by columnar
// alignment: runs of consecutive lines that split into the same number of
// cells on wide whitespace gaps. It is a best-effort stand-in for a
// structural table detector and only has to be good enough for the generic
// fallback path.
type LayoutTableExtractor struct {
	text Extractor
}

// NewLayoutTableExtractor creates a table extractor over the given text extractor.
func NewLayoutTableExtractor(text Extractor) *LayoutTableExtractor {
	return &LayoutTableExtractor{text: text}
}

var cellSeparator = regexp.MustCompile(`\s{2,}`)

// minTableRows is the smallest run of aligned lines treated as a table
// (one header plus at least one data row).
const minTableRows = 2

// ExtractTables scans every page for columnar runs.
func (e *LayoutTableExtractor) ExtractTables(pdfPath string) ([]Table, error) {
	pages, err := e.text.ExtractPages(pdfPath)
	if err != nil {
		return nil, err
	}

	var tables []Table
	for _, page := range pages {
		tables = append(tables, detectTables(page)...)
	}
	return tables, nil
}

func detectTables(pageText string) []Table {
	var tables []Table
	var run [][]string

	flush := func() {
		if len(run) >= minTableRows {
			tables = append(tables, Table{Header: run[0], Rows: run[1:]})
		}
		run = nil
	}

	for _, line := range strings.Split(pageText, "\n") {
		cells := splitCells(line)
		if len(cells) < 2 {
			flush()
			continue
		}
		if len(run) > 0 && len(cells) != len(run[0]) {
			flush()
		}
		run = append(run, cells)
	}
	flush()

	return tables
}

func splitCells(line string) []string {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	cells := cellSeparator.Split(line, -1)
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}
