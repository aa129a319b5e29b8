package progress

import "fmt"

// TierKind is the coarse badge category derived from days clean.
type TierKind string

const (
	TierNone    TierKind = "none"
	TierWeek    TierKind = "week"
	TierMonth   TierKind = "month"
	TierQuarter TierKind = "quarter"
	TierYear    TierKind = "year"
)

// TierBadge is the badge shown next to a tracker. Count is only meaningful
// for the year tier, where it repeats per additional full year (365 days
// -> 1, 730 -> 2). Lower tiers carry count 1, none carries 0.
type TierBadge struct {
	Kind  TierKind `json:"kind"`
	Count int      `json:"count"`
}

// ResolveTier maps days clean to a badge. Boundaries are inclusive: landing
// exactly on 7, 30, 90 or 365 counts as reaching that tier.
func ResolveTier(daysClean int) TierBadge {
	switch {
	case daysClean >= 365:
		return TierBadge{Kind: TierYear, Count: daysClean / 365}
	case daysClean >= 90:
		return TierBadge{Kind: TierQuarter, Count: 1}
	case daysClean >= 30:
		return TierBadge{Kind: TierMonth, Count: 1}
	case daysClean >= 7:
		return TierBadge{Kind: TierWeek, Count: 1}
	default:
		return TierBadge{Kind: TierNone, Count: 0}
	}
}

// tierRank orders kinds for monotonicity checks and comparisons.
var tierRank = map[TierKind]int{
	TierNone:    0,
	TierWeek:    1,
	TierMonth:   2,
	TierQuarter: 3,
	TierYear:    4,
}

// Outranks reports whether b is a strictly higher badge than other, counting
// additional years as advancement within the year tier.
func (b TierBadge) Outranks(other TierBadge) bool {
	if tierRank[b.Kind] != tierRank[other.Kind] {
		return tierRank[b.Kind] > tierRank[other.Kind]
	}
	return b.Count > other.Count
}

// Label renders the badge for notification copy.
func (b TierBadge) Label() string {
	switch b.Kind {
	case TierWeek:
		return "One week badge"
	case TierMonth:
		return "One month badge"
	case TierQuarter:
		return "Three months badge"
	case TierYear:
		if b.Count <= 1 {
			return "One year badge"
		}
		return fmt.Sprintf("%d years badge", b.Count)
	default:
		return ""
	}
}
