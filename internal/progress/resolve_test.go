package progress

import (
	"reflect"
	"testing"
)

func testCatalog() []Milestone {
	return []Milestone{
		{DayThreshold: 7, Title: "One Week"},
		{DayThreshold: 30, Title: "One Month"},
		{DayThreshold: 90, Title: "Three Months"},
	}
}

func TestResolveMarksCompletedAndNext(t *testing.T) {
	statuses := Resolve(10, testCatalog())

	if len(statuses) != 3 {
		t.Fatalf("expected 3 statuses, got %d", len(statuses))
	}

	if !statuses[0].Completed || statuses[0].IsNext {
		t.Errorf("day 7 at daysClean=10: want completed=true next=false, got completed=%v next=%v",
			statuses[0].Completed, statuses[0].IsNext)
	}
	if statuses[1].Completed || !statuses[1].IsNext {
		t.Errorf("day 30 at daysClean=10: want completed=false next=true, got completed=%v next=%v",
			statuses[1].Completed, statuses[1].IsNext)
	}
	if statuses[2].Completed || statuses[2].IsNext {
		t.Errorf("day 90 at daysClean=10: want completed=false next=false, got completed=%v next=%v",
			statuses[2].Completed, statuses[2].IsNext)
	}
}

func TestResolveExactlyOneNextBelowMax(t *testing.T) {
	catalog := testCatalog()

	for daysClean := -5; daysClean < 90; daysClean++ {
		statuses := Resolve(daysClean, catalog)
		nextCount := 0
		for _, st := range statuses {
			if st.IsNext {
				nextCount++
			}
		}
		if nextCount != 1 {
			t.Fatalf("daysClean=%d: expected exactly one next milestone, got %d", daysClean, nextCount)
		}
	}
}

func TestResolveNoNextWhenFullyComplete(t *testing.T) {
	catalog := testCatalog()

	for _, daysClean := range []int{90, 91, 365, 10000} {
		statuses := Resolve(daysClean, catalog)
		for _, st := range statuses {
			if !st.Completed {
				t.Errorf("daysClean=%d: milestone day %d should be completed", daysClean, st.Milestone.DayThreshold)
			}
			if st.IsNext {
				t.Errorf("daysClean=%d: no milestone should be next when all are complete", daysClean)
			}
		}
	}
}

func TestResolveThresholdBoundaryInclusive(t *testing.T) {
	statuses := Resolve(7, testCatalog())

	if !statuses[0].Completed {
		t.Errorf("daysClean exactly on threshold 7 should count as completed")
	}
	if !statuses[1].IsNext {
		t.Errorf("day 30 should be next when daysClean=7")
	}
}

func TestResolveIdempotent(t *testing.T) {
	catalog := testCatalog()

	first := Resolve(10, catalog)
	second := Resolve(10, catalog)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Resolve is not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestResolveCompletionMonotonic(t *testing.T) {
	catalog := testCatalog()

	prevCompleted := 0
	for daysClean := 0; daysClean <= 100; daysClean++ {
		completed := 0
		for _, st := range Resolve(daysClean, catalog) {
			if st.Completed {
				completed++
			}
		}
		if completed < prevCompleted {
			t.Fatalf("completion regressed at daysClean=%d: %d -> %d", daysClean, prevCompleted, completed)
		}
		prevCompleted = completed
	}
}

func TestResolveUnsetAllFalse(t *testing.T) {
	statuses := ResolveUnset(testCatalog())

	if len(statuses) != 3 {
		t.Fatalf("expected 3 statuses, got %d", len(statuses))
	}
	for _, st := range statuses {
		if st.Completed || st.IsNext {
			t.Errorf("unset tracker: milestone day %d should be neither completed nor next",
				st.Milestone.DayThreshold)
		}
	}
}

func TestFraction(t *testing.T) {
	catalog := testCatalog()

	cases := []struct {
		daysClean int
		want      float64
	}{
		{0, 0},
		{7, 1.0 / 3.0},
		{30, 2.0 / 3.0},
		{90, 1},
		{500, 1},
	}
	for _, tc := range cases {
		got := Fraction(Resolve(tc.daysClean, catalog))
		if got != tc.want {
			t.Errorf("Fraction at daysClean=%d: got %v, want %v", tc.daysClean, got, tc.want)
		}
	}

	if got := Fraction(nil); got != 0 {
		t.Errorf("Fraction of empty timeline: got %v, want 0", got)
	}
}

func TestNextMilestone(t *testing.T) {
	catalog := testCatalog()

	next := NextMilestone(Resolve(10, catalog))
	if next == nil || next.DayThreshold != 30 {
		t.Errorf("expected next milestone day 30, got %+v", next)
	}

	if next := NextMilestone(Resolve(90, catalog)); next != nil {
		t.Errorf("fully complete timeline should have no next milestone, got %+v", next)
	}

	if next := NextMilestone(ResolveUnset(catalog)); next != nil {
		t.Errorf("unset tracker should have no next milestone, got %+v", next)
	}
}
