package progress

import "testing"

func TestResolveTier(t *testing.T) {
	cases := []struct {
		daysClean int
		want      TierBadge
	}{
		{0, TierBadge{Kind: TierNone}},
		{1, TierBadge{Kind: TierNone}},
		{6, TierBadge{Kind: TierNone}},
		{7, TierBadge{Kind: TierWeek, Count: 1}},
		{29, TierBadge{Kind: TierWeek, Count: 1}},
		{30, TierBadge{Kind: TierMonth, Count: 1}},
		{89, TierBadge{Kind: TierMonth, Count: 1}},
		{90, TierBadge{Kind: TierQuarter, Count: 1}},
		{180, TierBadge{Kind: TierQuarter, Count: 1}},
		{364, TierBadge{Kind: TierQuarter, Count: 1}},
		{365, TierBadge{Kind: TierYear, Count: 1}},
		{729, TierBadge{Kind: TierYear, Count: 1}},
		{730, TierBadge{Kind: TierYear, Count: 2}},
		{3650, TierBadge{Kind: TierYear, Count: 10}},
	}

	for _, tc := range cases {
		got := ResolveTier(tc.daysClean)
		if got != tc.want {
			t.Errorf("ResolveTier(%d): got %+v, want %+v", tc.daysClean, got, tc.want)
		}
	}
}

func TestResolveTierNegativeDays(t *testing.T) {
	for _, daysClean := range []int{-1, -30, -365} {
		got := ResolveTier(daysClean)
		if got.Kind != TierNone {
			t.Errorf("ResolveTier(%d): got %+v, want no tier", daysClean, got)
		}
	}
}

func TestTierNeverRegresses(t *testing.T) {
	prev := TierBadge{Kind: TierNone}
	for daysClean := 0; daysClean <= 800; daysClean++ {
		got := ResolveTier(daysClean)
		if prev.Outranks(got) {
			t.Fatalf("tier regressed at daysClean=%d: %+v -> %+v", daysClean, prev, got)
		}
		prev = got
	}
}

func TestTierOutranks(t *testing.T) {
	year := TierBadge{Kind: TierYear, Count: 1}
	month := TierBadge{Kind: TierMonth, Count: 1}
	week := TierBadge{Kind: TierWeek, Count: 1}
	none := TierBadge{Kind: TierNone}

	if !year.Outranks(month) {
		t.Errorf("year badge should outrank month badge")
	}
	if !month.Outranks(week) {
		t.Errorf("month badge should outrank week badge")
	}
	if !week.Outranks(none) {
		t.Errorf("week badge should outrank no badge")
	}
	if none.Outranks(week) {
		t.Errorf("no badge should not outrank week badge")
	}

	twoYears := TierBadge{Kind: TierYear, Count: 2}
	if !twoYears.Outranks(year) {
		t.Errorf("second year badge should outrank first")
	}
	if year.Outranks(year) {
		t.Errorf("a badge should not outrank itself")
	}
}
