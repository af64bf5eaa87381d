package pdftext

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFExtractor is the production Extractor backed by the ledongthuc/pdf
// library. It expects text-based PDFs; scanned documents yield no text and
// are reported as extraction failures upstream.
type PDFExtractor struct{}

// NewPDFExtractor creates a new PDFExtractor instance.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// ExtractPages extracts the text of each page, preserving row order.
// The PDF library can panic on malformed files, so failures are converted
// to errors rather than crashing the batch.
func (e *PDFExtractor) ExtractPages(pdfPath string) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf library failure: %v", r)
		}
	}()

	f, reader, err := pdf.Open(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	numPages := reader.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("PDF has no pages")
	}

	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		text := extractPageByRow(page)
		if text == "" {
			text = extractPageByContent(page)
		}
		pages = append(pages, text)
	}

	return pages, nil
}

// extractPageByRow uses the library's row grouping, which preserves layout
// well for most statement PDFs.
func extractPageByRow(page pdf.Page) string {
	rows, err := page.GetTextByRow()
	if err != nil {
		return ""
	}

	var lines []string
	for _, row := range rows {
		var parts []string
		for _, word := range row.Content {
			parts = append(parts, word.S)
		}
		line := strings.TrimSpace(strings.Join(parts, " "))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// extractPageByContent reconstructs rows from raw text coordinates when
// GetTextByRow yields nothing. Text pieces are grouped by Y, sorted by X,
// and wide horizontal gaps become column separators.
func extractPageByContent(page pdf.Page) string {
	content := page.Content()
	if len(content.Text) == 0 {
		return ""
	}

	type textItem struct {
		x float64
		s string
	}
	rowMap := make(map[int][]textItem)
	for _, t := range content.Text {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		yKey := int(math.Round(t.Y))
		rowMap[yKey] = append(rowMap[yKey], textItem{x: t.X, s: t.S})
	}

	yKeys := make([]int, 0, len(rowMap))
	for y := range rowMap {
		yKeys = append(yKeys, y)
	}
	// PDF Y coordinates run bottom-to-top
	sort.Sort(sort.Reverse(sort.IntSlice(yKeys)))

	var lines []string
	for _, y := range yKeys {
		items := rowMap[y]
		sort.Slice(items, func(a, b int) bool {
			return items[a].x < items[b].x
		})

		var sb strings.Builder
		var prevX float64
		for j, item := range items {
			if j > 0 {
				if item.x-prevX > 15 {
					sb.WriteString("  ")
				} else {
					sb.WriteString(" ")
				}
			}
			sb.WriteString(item.s)
			prevX = item.x
		}
		line := strings.TrimSpace(sb.String())
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
