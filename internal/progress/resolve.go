package progress

// MilestoneStatus is a catalog entry plus its derived completion state for
// one tracker. Derived on every call, never persisted.
type MilestoneStatus struct {
	Milestone Milestone `json:"milestone"`
	Completed bool      `json:"completed"`
	IsNext    bool      `json:"is_next"`
}

// Resolve walks the ascending catalog once and marks each entry completed
// when daysClean has reached its threshold. The first incomplete entry is
// the single "next" milestone; when every threshold is met nothing is
// marked next. The returned slice is a fresh snapshot the caller owns.
func Resolve(daysClean int, catalog []Milestone) []MilestoneStatus {
	statuses := make([]MilestoneStatus, 0, len(catalog))
	nextMarked := false

	for _, m := range catalog {
		st := MilestoneStatus{
			Milestone: m,
			Completed: daysClean >= m.DayThreshold,
		}
		if !st.Completed && !nextMarked {
			st.IsNext = true
			nextMarked = true
		}
		statuses = append(statuses, st)
	}
	return statuses
}

// ResolveUnset is the resolution for a tracker with no quit date: nothing
// completed, nothing next. The client renders a "start tracking" prompt
// instead of a timeline position.
func ResolveUnset(catalog []Milestone) []MilestoneStatus {
	statuses := make([]MilestoneStatus, 0, len(catalog))
	for _, m := range catalog {
		statuses = append(statuses, MilestoneStatus{Milestone: m})
	}
	return statuses
}

// Fraction returns the completed share of the timeline in [0, 1].
func Fraction(statuses []MilestoneStatus) float64 {
	if len(statuses) == 0 {
		return 0
	}
	completed := 0
	for _, st := range statuses {
		if st.Completed {
			completed++
		}
	}
	return float64(completed) / float64(len(statuses))
}

// NextMilestone returns the entry marked IsNext, or nil when the timeline is
// fully complete or the tracker has not started.
func NextMilestone(statuses []MilestoneStatus) *Milestone {
	for _, st := range statuses {
		if st.IsNext {
			m := st.Milestone
			return &m
		}
	}
	return nil
}
