package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar-day layout used on the wire and in storage.
const DateLayout = "2006-01-02"

var (
	// ErrEmptyDate is returned for records without a date.
	ErrEmptyDate = errors.New("empty date")
	// ErrMalformedDate is returned for dates matching none of the accepted layouts.
	ErrMalformedDate = errors.New("malformed date")
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	DateLayout,
}

// ParseTimestamp parses the ISO-8601 strings persisted on records. Date-only
// values resolve to midnight UTC; timestamps keep their offset so that Day
// returns the date exactly as written.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrEmptyDate
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, value)
}

// ParseDay parses a YYYY-MM-DD (or longer ISO) value and returns its calendar day.
func ParseDay(value string) (time.Time, error) {
	t, err := ParseTimestamp(value)
	if err != nil {
		return time.Time{}, err
	}
	return Day(t), nil
}

// Day truncates t to its calendar day, expressed as midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDay renders the calendar day of t.
func FormatDay(t time.Time) string {
	return Day(t).Format(DateLayout)
}
