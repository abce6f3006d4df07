package models

// MatchConfidence tiers a MatchSuggestion for administrator review.
type MatchConfidence string

const (
	ConfidenceHigh MatchConfidence = "HIGH"
	ConfidenceLow  MatchConfidence = "LOW"
)

// MatchSuggestion pairs a LOST and a FOUND item of the same category.
// Suggestions are computed on demand and never persisted; accepting one is
// the same as linking the two items.
type MatchSuggestion struct {
	LostItem       *Item
	FoundItem      *Item
	Confidence     MatchConfidence
	SharedKeywords []string
}
