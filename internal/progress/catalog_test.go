package progress

import "testing"

func TestLoadCatalog(t *testing.T) {
	catalog, err := LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if len(catalog) == 0 {
		t.Fatal("embedded catalog is empty")
	}

	if catalog[0].DayThreshold != 1 {
		t.Errorf("first milestone should be day 1, got day %d", catalog[0].DayThreshold)
	}

	for i, m := range catalog {
		if m.Title == "" {
			t.Errorf("milestone %d (day %d): missing title", i, m.DayThreshold)
		}
		if m.Description == "" {
			t.Errorf("milestone %d (day %d): missing description", i, m.DayThreshold)
		}
		if i > 0 && m.DayThreshold <= catalog[i-1].DayThreshold {
			t.Errorf("milestone %d: day %d not strictly after day %d",
				i, m.DayThreshold, catalog[i-1].DayThreshold)
		}
	}
}

func TestValidateCatalogRejectsBadData(t *testing.T) {
	cases := []struct {
		name string
		ms   []Milestone
	}{
		{
			name: "duplicate threshold",
			ms: []Milestone{
				{DayThreshold: 7, Title: "One Week"},
				{DayThreshold: 7, Title: "One Week Again"},
			},
		},
		{
			name: "out of order",
			ms: []Milestone{
				{DayThreshold: 30, Title: "One Month"},
				{DayThreshold: 7, Title: "One Week"},
			},
		},
		{
			name: "zero threshold",
			ms: []Milestone{
				{DayThreshold: 0, Title: "Day Zero"},
			},
		},
		{
			name: "missing title",
			ms: []Milestone{
				{DayThreshold: 7, Title: ""},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := validateCatalog(tc.ms); err == nil {
				t.Errorf("expected validation error for %s", tc.name)
			}
		})
	}
}

func TestValidateCatalogAcceptsGoodData(t *testing.T) {
	if err := validateCatalog(testCatalog()); err != nil {
		t.Errorf("valid catalog rejected: %v", err)
	}
}

func TestNormalizeRepairsCatalog(t *testing.T) {
	broken := []Milestone{
		{DayThreshold: 30, Title: "One Month"},
		{DayThreshold: 7, Title: "One Week"},
		{DayThreshold: 30, Title: "One Month Duplicate"},
		{DayThreshold: 1, Title: "Day One"},
	}

	fixed := Normalize(broken)

	if err := validateCatalog(fixed); err != nil {
		t.Fatalf("normalized catalog still invalid: %v", err)
	}
	if len(fixed) != 3 {
		t.Fatalf("expected 3 milestones after dedup, got %d", len(fixed))
	}

	want := []int{1, 7, 30}
	for i, m := range fixed {
		if m.DayThreshold != want[i] {
			t.Errorf("position %d: got day %d, want day %d", i, m.DayThreshold, want[i])
		}
	}

	// first occurrence wins on duplicates
	if fixed[2].Title != "One Month" {
		t.Errorf("dedup kept %q, want the first occurrence", fixed[2].Title)
	}

	if len(broken) != 4 || broken[0].DayThreshold != 30 {
		t.Errorf("Normalize must not mutate its input")
	}
}
