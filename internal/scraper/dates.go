package scraper

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Jain-Tirth/OpportuneX/internal/models"
)

// Platform date fields carry anything from RFC3339 timestamps to
// "12 Aug 2025", "TBD" or "5 days left". Everything funnels through
// NormalizeDate so the rest of the pipeline only ever sees canonical
// YYYY-MM-DD strings or nil.

var nonDateTokens = []string{"online", "virtual", "tbd", "tba"}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"Jan 2 2006",
	"2 January 2006",
	"2 Jan 2006",
	"02 January 2006",
	"02 Jan 2006",
}

var daysLeftPattern = regexp.MustCompile(`(?i)(\d+)\s+days?\s+left`)

// NormalizeDate coerces a raw platform date string into canonical form,
// relative to the current time for "N days left" style deadlines.
func NormalizeDate(raw string) *string {
	return NormalizeDateAt(raw, time.Now().UTC())
}

// NormalizeDateAt is NormalizeDate with an injectable clock.
// It returns nil for empty input, known non-date tokens and anything
// that survives neither the general parse nor the numeric fallbacks.
func NormalizeDateAt(raw string, now time.Time) *string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	lower := strings.ToLower(s)
	for _, token := range nonDateTokens {
		if strings.Contains(lower, token) {
			return nil
		}
	}

	if m := daysLeftPattern.FindStringSubmatch(s); m != nil {
		days, err := strconv.Atoi(m[1])
		if err != nil {
			return nil
		}
		return canonical(now.AddDate(0, 0, days))
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return canonical(t)
		}
	}

	if t, ok := parseNumericDate(s); ok {
		return canonical(t)
	}

	return nil
}

// parseNumericDate handles all-numeric forms such as DD-MM-YY, YY-MM-DD
// and DD/MM/YYYY. Two-digit years pivot at 50 (<50 is 2000s), and both
// day/month orderings are tried, first valid calendar date wins.
func parseNumericDate(s string) (time.Time, bool) {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == '/' || r == '.' || r == ' '
	})
	if len(parts) != 3 {
		return time.Time{}, false
	}

	nums := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return time.Time{}, false
		}
		nums[i] = n
	}

	type candidate struct{ year, month, day int }
	var candidates []candidate

	if len(parts[0]) == 4 {
		// YYYY-a-b
		candidates = append(candidates,
			candidate{nums[0], nums[1], nums[2]},
			candidate{nums[0], nums[2], nums[1]},
		)
	} else if len(parts[2]) == 4 {
		// a-b-YYYY
		candidates = append(candidates,
			candidate{nums[2], nums[1], nums[0]},
			candidate{nums[2], nums[0], nums[1]},
		)
	} else {
		// Two-digit year, could lead (YY-MM-DD) or trail (DD-MM-YY).
		candidates = append(candidates,
			candidate{expandYear(nums[2]), nums[1], nums[0]},
			candidate{expandYear(nums[2]), nums[0], nums[1]},
			candidate{expandYear(nums[0]), nums[1], nums[2]},
			candidate{expandYear(nums[0]), nums[2], nums[1]},
		)
	}

	for _, c := range candidates {
		if validCalendarDate(c.year, c.month, c.day) {
			return time.Date(c.year, time.Month(c.month), c.day, 0, 0, 0, 0, time.UTC), true
		}
	}

	return time.Time{}, false
}

func expandYear(yy int) int {
	if yy >= 100 {
		return yy
	}
	if yy < 50 {
		return 2000 + yy
	}
	return 1900 + yy
}

func validCalendarDate(year, month, day int) bool {
	if year < 1900 || year > 2200 {
		return false
	}
	if month < 1 || month > 12 {
		return false
	}
	if day < 1 {
		return false
	}
	// Day zero of the next month is the last day of this one.
	last := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	return day <= last
}

func canonical(t time.Time) *string {
	s := t.Format(models.DateLayout)
	return &s
}

// isPastDate reports whether the canonical date string falls strictly
// before today. Lexicographic comparison is safe for YYYY-MM-DD.
func isPastDate(date *string, now time.Time) bool {
	if date == nil || *date == "" {
		return false
	}
	return *date < now.Format(models.DateLayout)
}
