package addiction

import "strconv"

// Record keys in the per-user record store. The mobile clients used the same
// flat layout, so sync stays a dumb key copy.
const (
	CustomListKey  = "custom_addictions"
	QuitDatePrefix = "quit/"
	NotifiedPrefix = "notified/"
)

func QuitDateKey(addictionID string) string {
	return QuitDatePrefix + addictionID
}

// NotifiedMilestoneKey marks a milestone push as already sent, so the
// watcher never notifies the same threshold twice.
func NotifiedMilestoneKey(addictionID string, dayThreshold int) string {
	return NotifiedPrefix + addictionID + "/" + strconv.Itoa(dayThreshold)
}

// NotifiedTierKey holds the highest badge already announced for a tracker.
func NotifiedTierKey(addictionID string) string {
	return NotifiedPrefix + addictionID + "/tier"
}

// QuitRecord is one tracked addiction. QuitDate is the raw ISO-8601 string
// as stored; nil means the user hasn't started tracking yet.
type QuitRecord struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	QuitDate *string `json:"quit_date,omitempty"`
}

var builtIns = []QuitRecord{
	{ID: "alcohol", Title: "Alcohol"},
	{ID: "smoking", Title: "Smoking"},
	{ID: "vaping", Title: "Vaping"},
	{ID: "drugs", Title: "Drugs"},
	{ID: "gambling", Title: "Gambling"},
	{ID: "pornography", Title: "Pornography"},
	{ID: "social_media", Title: "Social Media"},
	{ID: "sugar", Title: "Sugar"},
}

// BuiltIn returns the fixed addiction categories every account starts with.
// Callers get a fresh copy; the catalog itself is never mutated.
func BuiltIn() []QuitRecord {
	out := make([]QuitRecord, len(builtIns))
	copy(out, builtIns)
	return out
}

func IsBuiltIn(addictionID string) bool {
	for _, b := range builtIns {
		if b.ID == addictionID {
			return true
		}
	}
	return false
}
