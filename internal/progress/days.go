package progress

import (
	"fmt"
	"time"
)

// ParseError is returned when a stored quit date string cannot be parsed.
// Callers at the storage boundary are expected to catch it and treat the
// record as if no quit date were set.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid quit date %q: %v", e.Raw, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// quitDateLayouts are tried in order. Mobile clients have stored full RFC 3339
// timestamps, zone-less local timestamps and bare dates at different points,
// so all three must keep parsing.
var quitDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseQuitDate parses a stored ISO-8601 quit date string.
func ParseQuitDate(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range quitDateLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, &ParseError{Raw: raw, Err: lastErr}
}

// DaysClean returns the day count since quitDate, counting the quit day
// itself as day 1: a quit date equal to now yields 1, a quit date exactly
// 24h ago yields 2. A quit date in the future yields zero or a negative
// value; callers decide how to present that (typically "not started").
func DaysClean(quitDate, now time.Time) int {
	const day = 24 * time.Hour

	elapsed := now.Sub(quitDate)
	days := int(elapsed / day)
	if elapsed < 0 && elapsed%day != 0 {
		// integer division truncates toward zero; future dates need floor
		days--
	}
	return days + 1
}
