package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestampAcceptsStoredShapes(t *testing.T) {
	cases := map[string]string{
		"2024-01-01":                "2024-01-01",
		"2024-01-01T10:30:00.000Z":  "2024-01-01",
		"2024-01-01T23:59:59+05:30": "2024-01-01",
		"2024-01-01T08:15:00":       "2024-01-01",
		" 2024-03-09 ":              "2024-03-09",
	}

	for raw, day := range cases {
		ts, err := ParseTimestamp(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, day, FormatDay(ts), raw)
	}
}

func TestParseTimestampRejectsGarbage(t *testing.T) {
	_, err := ParseTimestamp("")
	assert.ErrorIs(t, err, ErrEmptyDate)

	for _, raw := range []string{"yesterday", "01/02/2024", "2024-13-01"} {
		_, err := ParseTimestamp(raw)
		assert.ErrorIs(t, err, ErrMalformedDate, raw)
	}
}

func TestDayKeepsWrittenDate(t *testing.T) {
	ts, err := ParseTimestamp("2024-01-02T01:00:00+05:30")
	require.NoError(t, err)

	// 2024-01-01T19:30Z in UTC, but the record says the 2nd.
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Day(ts))
}
