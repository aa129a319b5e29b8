// Package progress derives day counts, milestone completion and achievement
// tiers from a quit date. Everything here is a pure function of its inputs;
// handlers and background workers recompute on every call instead of caching.
package progress

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Milestone is one fixed entry of the recovery timeline.
type Milestone struct {
	DayThreshold  int    `json:"day_threshold" yaml:"day"`
	Title         string `json:"title" yaml:"title"`
	Description   string `json:"description" yaml:"description"`
	ReferenceLink string `json:"reference_link" yaml:"link"`
}

//go:embed milestones.yaml
var rawCatalog []byte

type catalogFile struct {
	Milestones []Milestone `yaml:"milestones"`
}

// LoadCatalog parses the embedded milestone catalog. When the catalog data
// violates its ordering invariant the parsed entries are still returned
// together with the error, so callers can decide between failing hard and
// repairing with Normalize.
func LoadCatalog() ([]Milestone, error) {
	var f catalogFile
	if err := yaml.Unmarshal(rawCatalog, &f); err != nil {
		return nil, fmt.Errorf("parsing milestone catalog: %w", err)
	}
	if len(f.Milestones) == 0 {
		return nil, fmt.Errorf("milestone catalog is empty")
	}
	if err := validateCatalog(f.Milestones); err != nil {
		return f.Milestones, err
	}
	return f.Milestones, nil
}

// validateCatalog checks the ordering invariant: ascending day thresholds,
// no duplicates, no empty titles.
func validateCatalog(ms []Milestone) error {
	for i, m := range ms {
		if m.DayThreshold < 1 {
			return fmt.Errorf("milestone %d: day threshold %d must be >= 1", i, m.DayThreshold)
		}
		if m.Title == "" {
			return fmt.Errorf("milestone %d (day %d): title is required", i, m.DayThreshold)
		}
		if i == 0 {
			continue
		}
		prev := ms[i-1].DayThreshold
		if m.DayThreshold == prev {
			return fmt.Errorf("milestone %d: duplicate day threshold %d", i, m.DayThreshold)
		}
		if m.DayThreshold < prev {
			return fmt.Errorf("milestone %d: day threshold %d out of order after %d", i, m.DayThreshold, prev)
		}
	}
	return nil
}

// Normalize returns a sorted copy of the catalog with duplicate thresholds
// dropped (first occurrence wins). Production deployments use it to keep
// serving when validateCatalog fails; everywhere else a broken catalog is
// fatal at startup.
func Normalize(ms []Milestone) []Milestone {
	out := make([]Milestone, len(ms))
	copy(out, ms)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DayThreshold < out[j].DayThreshold
	})

	deduped := out[:0]
	seen := map[int]bool{}
	for _, m := range out {
		if seen[m.DayThreshold] {
			continue
		}
		seen[m.DayThreshold] = true
		deduped = append(deduped, m)
	}
	return deduped
}
