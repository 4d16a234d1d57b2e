package candidate

import (
	"strings"
	"time"
)

// dateLayouts are tried in order; the first successful parse wins. These cover
// the formats extraction actually emits ("Jun 2023", "June 2023", "06/2023",
// "2023-06", "2023", "06 2023").
var dateLayouts = []string{
	"Jan 2006",
	"January 2006",
	"1/2006",
	"2006-1",
	"2006",
	"1 2006",
}

// ParseDate parses a free-text resume date. The second return value is false
// when the input matches none of the known layouts; callers treat that as
// zero duration rather than an error.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// IsOngoing reports whether a to_date marks a role that is still running.
// Empty strings count: extraction leaves to_date blank for current roles.
func IsOngoing(toDate string) bool {
	switch strings.ToLower(strings.TrimSpace(toDate)) {
	case "", "present", "current":
		return true
	}
	return false
}

// SpanYears returns the duration between two free-text dates in fractional
// years. Ongoing ranges end at now; unparseable endpoints yield 0.
func SpanYears(fromDate, toDate string, now time.Time) float64 {
	from, ok := ParseDate(fromDate)
	if !ok {
		return 0
	}
	to := now
	if !IsOngoing(toDate) {
		parsed, ok := ParseDate(toDate)
		if !ok {
			return 0
		}
		to = parsed
	}
	if to.Before(from) {
		return 0
	}
	return to.Sub(from).Hours() / 24 / 365.25
}
