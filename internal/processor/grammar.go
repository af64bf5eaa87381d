package processor

import (
	"path/filepath"
	"regexp"
	"strconv"
	"time"
)

// Shared line-grammar pieces. Each issuer anchors its transaction lines on a
// distinct date prefix, which keeps the grammars from consuming each other's
// lines.
var (
	// Trailing amount: optional minus, digits with optional thousands
	// separators, exactly two decimals.
	amountToken = `-?[\d,]+\.\d{2}`

	statementYearPattern = regexp.MustCompile(`20\d{2}`)
)

// yearFromFilename infers a statement year from a 4-digit token in the
// filename. Day/month-only grammars (Chase) need this because their lines
// carry no year. Falls back to the current calendar year; statements that
// span a year boundary can be misattributed, which matches the accepted
// behavior of the original pipeline.
func yearFromFilename(pdfPath string, now func() time.Time) int {
	if m := statementYearPattern.FindString(filepath.Base(pdfPath)); m != "" {
		year, err := strconv.Atoi(m)
		if err == nil && year >= 2000 && year <= 2099 {
			return year
		}
	}
	return now().UTC().Year()
}

// monthDay parses "MM/DD" tokens into a date in the given year.
func monthDay(token string, year int) (time.Time, bool) {
	t, err := time.Parse("01/02", token)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(year, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
}
