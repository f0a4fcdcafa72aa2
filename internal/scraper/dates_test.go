package scraper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, time.July, 10, 12, 0, 0, 0, time.UTC)

func TestNormalizeDateCanonicalForms(t *testing.T) {
	cases := map[string]string{
		"2025-07-15":            "2025-07-15",
		"2025-07-15T10:30:00Z":  "2025-07-15",
		"2025-07-15 10:30:00":   "2025-07-15",
		"2025/07/15":            "2025-07-15",
		"July 15, 2025":         "2025-07-15",
		"Jul 15, 2025":          "2025-07-15",
		"15 July 2025":          "2025-07-15",
		"15 Jul 2025":           "2025-07-15",
		"15-07-2025":            "2025-07-15",
		"15/07/2025":            "2025-07-15",
		"15.07.25":              "2025-07-15",
	}
	for raw, want := range cases {
		got := NormalizeDateAt(raw, fixedNow)
		require.NotNil(t, got, "input %q", raw)
		assert.Equal(t, want, *got, "input %q", raw)
	}
}

func TestNormalizeDateDaysLeft(t *testing.T) {
	got := NormalizeDateAt("3 days left", fixedNow)
	require.NotNil(t, got)
	assert.Equal(t, "2025-07-13", *got)

	got = NormalizeDateAt("1 day left", fixedNow)
	require.NotNil(t, got)
	assert.Equal(t, "2025-07-11", *got)
}

func TestNormalizeDateNonDates(t *testing.T) {
	for _, raw := range []string{"", "   ", "Online", "virtual event", "TBD", "TBA", "soon", "free"} {
		assert.Nil(t, NormalizeDateAt(raw, fixedNow), "input %q", raw)
	}
}

func TestNormalizeDateAmbiguousNumeric(t *testing.T) {
	// 13 cannot be a month, so the day/month ordering resolves itself.
	got := NormalizeDateAt("13-07-2025", fixedNow)
	require.NotNil(t, got)
	assert.Equal(t, "2025-07-13", *got)

	// Both orderings valid: first candidate (day first) wins.
	got = NormalizeDateAt("05-07-2025", fixedNow)
	require.NotNil(t, got)
	assert.Equal(t, "2025-07-05", *got)
}

func TestNormalizeDateTwoDigitYearPivot(t *testing.T) {
	got := NormalizeDateAt("15-07-49", fixedNow)
	require.NotNil(t, got)
	assert.Equal(t, "2049-07-15", *got)

	got = NormalizeDateAt("15-07-99", fixedNow)
	require.NotNil(t, got)
	assert.Equal(t, "1999-07-15", *got)
}

func TestNormalizeDateInvalidCalendarDay(t *testing.T) {
	assert.Nil(t, NormalizeDateAt("31-02-2025", fixedNow))
	assert.Nil(t, NormalizeDateAt("2025-02-31", fixedNow))
}

func TestIsPastDate(t *testing.T) {
	past := "2025-07-09"
	today := "2025-07-10"
	future := "2025-07-11"

	assert.True(t, isPastDate(&past, fixedNow))
	assert.False(t, isPastDate(&today, fixedNow))
	assert.False(t, isPastDate(&future, fixedNow))
	assert.False(t, isPastDate(nil, fixedNow))
}
