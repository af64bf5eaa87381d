// Package dateutils provides common date operations used throughout the application.
package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// Common date format constants used throughout the application
const (
	DateLayoutISO  = "2006-01-02"
	DateLayoutUS   = "01/02/2006"
	DateLayoutFull = "2006-01-02 15:04:05"
)

// CommonFormats is a list of standard formats to try when parsing dates
var CommonFormats = []string{
	DateLayoutISO,
	DateLayoutUS,
	DateLayoutFull,
	"1/2/2006",
	"01/02/06",
	"2006/01/02",
	"Jan 2, 2006",
}

// ParseDate attempts to parse a date string using multiple common formats.
// Returns the parsed time and the detected format.
func ParseDate(dateStr string) (time.Time, string, error) {
	dateStr = CleanDateString(dateStr)

	for _, format := range CommonFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, format, nil
		}
	}

	return time.Time{}, "", fmt.Errorf("unable to parse date: %s", dateStr)
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// CleanDateString removes unwanted characters and normalizes a date string
func CleanDateString(dateStr string) string {
	return strings.Join(strings.Fields(dateStr), " ")
}
