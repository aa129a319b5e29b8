package progress

import (
	"errors"
	"testing"
	"time"
)

func TestDaysCleanQuitDayIsDayOne(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

	if got := DaysClean(now, now); got != 1 {
		t.Errorf("quit date equal to now: expected day 1, got %d", got)
	}
}

func TestDaysCleanExactly24hIsDayTwo(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	quit := now.Add(-24 * time.Hour)

	if got := DaysClean(quit, now); got != 2 {
		t.Errorf("quit date 24h ago: expected day 2, got %d", got)
	}
}

func TestDaysCleanPartialDayStaysOnCurrentDay(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

	// 23h59m elapsed is still day 1
	if got := DaysClean(now.Add(-24*time.Hour+time.Minute), now); got != 1 {
		t.Errorf("23h59m elapsed: expected day 1, got %d", got)
	}
	// 47h elapsed is day 2, 48h is day 3
	if got := DaysClean(now.Add(-47*time.Hour), now); got != 2 {
		t.Errorf("47h elapsed: expected day 2, got %d", got)
	}
	if got := DaysClean(now.Add(-48*time.Hour), now); got != 3 {
		t.Errorf("48h elapsed: expected day 3, got %d", got)
	}
}

func TestDaysCleanFutureQuitDateNonPositive(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

	cases := []struct {
		name  string
		quit  time.Time
		clean int
	}{
		{"one hour ahead", now.Add(time.Hour), 0},
		{"exactly 24h ahead", now.Add(24 * time.Hour), 0},
		{"25h ahead", now.Add(25 * time.Hour), -1},
		{"ten days ahead", now.Add(10 * 24 * time.Hour), -9},
	}

	for _, tc := range cases {
		if got := DaysClean(tc.quit, now); got != tc.clean {
			t.Errorf("%s: expected %d, got %d", tc.name, tc.clean, got)
		}
		if got := DaysClean(tc.quit, now); got > 0 {
			t.Errorf("%s: future quit date must not be positive, got %d", tc.name, got)
		}
	}
}

func TestDaysCleanLongSpans(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	if got := DaysClean(now.AddDate(-1, 0, 0), now); got != 366 {
		t.Errorf("one calendar year (365 days elapsed): expected 366, got %d", got)
	}
	if got := DaysClean(now.Add(-364*24*time.Hour), now); got != 365 {
		t.Errorf("364 full days elapsed: expected 365, got %d", got)
	}
}

func TestParseQuitDateFormats(t *testing.T) {
	cases := []struct {
		raw  string
		want time.Time
	}{
		{"2025-03-01T08:00:00Z", time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)},
		{"2025-03-01T08:00:00+02:00", time.Date(2025, 3, 1, 8, 0, 0, 0, time.FixedZone("", 2*3600))},
		{"2025-03-01T08:00:00", time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)},
		{"2025-03-01", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		got, err := ParseQuitDate(tc.raw)
		if err != nil {
			t.Errorf("ParseQuitDate(%q) failed: %v", tc.raw, err)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("ParseQuitDate(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestParseQuitDateMalformed(t *testing.T) {
	for _, raw := range []string{"not-a-date", "", "2025-13-45", "yesterday", "01/02/2025"} {
		_, err := ParseQuitDate(raw)
		if err == nil {
			t.Errorf("ParseQuitDate(%q) should have failed", raw)
			continue
		}

		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Errorf("ParseQuitDate(%q): expected *ParseError, got %T", raw, err)
			continue
		}
		if perr.Raw != raw {
			t.Errorf("ParseError.Raw = %q, want %q", perr.Raw, raw)
		}
	}
}
