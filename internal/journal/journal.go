package journal

import (
	"time"

	"github.com/google/uuid"
)

type Mood string

const (
	MoodGreat      Mood = "great"
	MoodGood       Mood = "good"
	MoodNeutral    Mood = "neutral"
	MoodLow        Mood = "low"
	MoodStruggling Mood = "struggling"
)

type JournalEntry struct {
	ID           uuid.UUID `json:"id" db:"id"`
	UserID       uuid.UUID `json:"user_id" db:"user_id"`
	Title        string    `json:"title" db:"title"`
	Body         string    `json:"body" db:"body"`
	Mood         Mood      `json:"mood" db:"mood"`
	CravingLevel int       `json:"craving_level" db:"craving_level"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
