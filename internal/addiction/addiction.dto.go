package addiction

import "github.com/RedGhoul/Quitter/internal/progress"

type CreateAddictionRequest struct {
	Title string `json:"title" validate:"required,min=2,max=60"`
}

type RenameAddictionRequest struct {
	Title string `json:"title" validate:"required,min=2,max=60"`
}

type SetQuitDateRequest struct {
	// ISO-8601; "2025-08-01", "2025-08-01T09:30:00Z" and offset forms all parse.
	QuitDate string `json:"quit_date" validate:"required"`
}

// TrackerView is a QuitRecord plus everything the client renders next to it.
// Derived fields are recomputed on every request, never stored.
type TrackerView struct {
	QuitRecord
	BuiltIn       bool                `json:"built_in"`
	Started       bool                `json:"started"`
	DaysClean     int                 `json:"days_clean"`
	Tier          progress.TierBadge  `json:"tier"`
	NextMilestone *progress.Milestone `json:"next_milestone,omitempty"`
	Progress      float64             `json:"progress"`
}

// ProgressView adds the full milestone timeline for a single tracker.
type ProgressView struct {
	TrackerView
	Milestones []progress.MilestoneStatus `json:"milestones"`
}

type TrackerListResponse struct {
	Trackers []TrackerView `json:"trackers"`
}
