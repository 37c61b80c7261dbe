package services

import (
	"github.com/maxaizer/intern-match/internal/domain/models"
	"strings"
)

// Resolve finds the catalog posting a suggestion refers to. The company must
// be equal ignoring case and surrounding whitespace. An equal title wins;
// otherwise the first posting whose title contains the suggested title is
// taken. Ties go to catalog order, which callers must not rely on.
func Resolve(suggestion models.Suggestion, catalog []models.Posting) (uint, bool) {
	title := normalize(suggestion.Title)
	company := normalize(suggestion.Company)
	if title == "" || company == "" {
		return 0, false
	}

	var (
		containsID uint
		contains   bool
	)
	for _, posting := range catalog {
		if normalize(posting.Company) != company {
			continue
		}
		postingTitle := normalize(posting.Title)
		if postingTitle == title {
			return posting.ID, true
		}
		if !contains && strings.Contains(postingTitle, title) {
			containsID, contains = posting.ID, true
		}
	}
	return containsID, contains
}

// Reconcile resolves every suggestion against the catalog. Resolved ones are
// returned as matches in input order; the rest are returned as dropped.
// It has no side effects.
func Reconcile(suggestions []models.Suggestion, catalog []models.Posting) (matches []models.Match, dropped []models.Suggestion) {
	matches = make([]models.Match, 0, len(suggestions))
	for _, suggestion := range suggestions {
		id, ok := Resolve(suggestion, catalog)
		if !ok {
			dropped = append(dropped, suggestion)
			continue
		}
		match := models.Match{Suggestion: suggestion, PostingID: id}
		match.Reasons = append([]string(nil), suggestion.Reasons...)
		matches = append(matches, match)
	}
	return matches, dropped
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
