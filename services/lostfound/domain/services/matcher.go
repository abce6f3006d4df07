package services

import (
	"sort"
	"strings"
	"unicode"

	"github.com/campuskeep/campuskeep/services/lostfound/domain/models"
)

// Matching heuristic: candidate items of the opposite kind and same category
// are scored by description keyword overlap. Keywords are lowercased tokens
// of three or more letters/digits with common filler words removed. A pair
// sharing at least minShared keywords is HIGH confidence, otherwise LOW.
// Suggestions order HIGH before LOW, then most recent report first.

// stopwords excluded from keyword extraction. Short tokens (< 3 runes) are
// dropped before this check.
var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "with": {}, "near": {}, "from": {}, "for": {},
	"was": {}, "has": {}, "had": {}, "this": {}, "that": {}, "have": {},
	"lost": {}, "found": {}, "item": {}, "color": {}, "colour": {},
}

// Keywords extracts the matchable keyword set from a free-form description.
func Keywords(description string) map[string]struct{} {
	fields := strings.FieldsFunc(strings.ToLower(description), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if len([]rune(f)) < 3 {
			continue
		}
		if _, skip := stopwords[f]; skip {
			continue
		}
		out[f] = struct{}{}
	}
	return out
}

// SharedKeywords returns the sorted intersection of both descriptions' keywords.
func SharedKeywords(a, b string) []string {
	ka := Keywords(a)
	var shared []string
	for kw := range Keywords(b) {
		if _, ok := ka[kw]; ok {
			shared = append(shared, kw)
		}
	}
	sort.Strings(shared)
	return shared
}

// matchEligible are the statuses a candidate may hold to appear in suggestions:
// unresolved LOST reports and FOUND items not yet claimed or closed.
func matchEligible(item *models.Item) bool {
	switch item.Kind {
	case models.KindLost:
		return item.Status == models.StatusOpen || item.Status == models.StatusPending
	case models.KindFound:
		return item.Status == models.StatusAvailable || item.Status == models.StatusPending
	}
	return false
}

// SuggestMatches pairs item with eligible candidates of the opposite report
// kind and same category, scored by keyword overlap. minShared is the HIGH
// confidence threshold. Already-linked candidates are skipped.
func SuggestMatches(item *models.Item, candidates []*models.Item, minShared int) []*models.MatchSuggestion {
	if minShared < 1 {
		minShared = 1
	}

	var out []*models.MatchSuggestion
	for _, cand := range candidates {
		if cand.Kind != item.Kind.Opposite() || cand.Category != item.Category {
			continue
		}
		if cand.LinkedItemID != nil || !matchEligible(cand) {
			continue
		}

		shared := SharedKeywords(item.Description, cand.Description)
		confidence := models.ConfidenceLow
		if len(shared) >= minShared {
			confidence = models.ConfidenceHigh
		}

		s := &models.MatchSuggestion{Confidence: confidence, SharedKeywords: shared}
		if item.Kind == models.KindLost {
			s.LostItem, s.FoundItem = item, cand
		} else {
			s.LostItem, s.FoundItem = cand, item
		}
		out = append(out, s)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Confidence != out[j].Confidence {
			return out[i].Confidence == models.ConfidenceHigh
		}
		return candidateOf(out[i], item).ReportedAt.After(candidateOf(out[j], item).ReportedAt)
	})
	return out
}

// candidateOf returns the suggestion's side that is not the queried item.
func candidateOf(s *models.MatchSuggestion, queried *models.Item) *models.Item {
	if s.LostItem.ID == queried.ID {
		return s.FoundItem
	}
	return s.LostItem
}
