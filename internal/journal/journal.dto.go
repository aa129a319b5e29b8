package journal

type CreateEntryRequest struct {
	Title        string `json:"title" validate:"required,max=120"`
	Body         string `json:"body" validate:"max=5000"`
	Mood         Mood   `json:"mood" validate:"required,oneof=great good neutral low struggling"`
	CravingLevel int    `json:"craving_level" validate:"min=0,max=10"`
}

type UpdateEntryRequest struct {
	Title        *string `json:"title,omitempty" validate:"omitempty,max=120"`
	Body         *string `json:"body,omitempty" validate:"omitempty,max=5000"`
	Mood         *Mood   `json:"mood,omitempty" validate:"omitempty,oneof=great good neutral low struggling"`
	CravingLevel *int    `json:"craving_level,omitempty" validate:"omitempty,min=0,max=10"`
}

type EntryListResponse struct {
	Entries    []*JournalEntry `json:"entries"`
	TotalCount int             `json:"total_count"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
}
