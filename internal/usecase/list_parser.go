package usecase

import (
	"regexp"
	"strings"

	"github.com/AladdinPP/prox-moble/internal/domain"
)

// Package-level compiled regex patterns for performance
var (
	multiSpacePattern = regexp.MustCompile(`\s+`)
	zipCodePattern    = regexp.MustCompile(`^\d{5}$`)
)

// ParseItemList splits a semicolon-delimited free-text shopping list
// ("milk; eggs; bread") into item specs. Terms are trimmed, inner whitespace
// collapsed, empties dropped, and duplicates removed preserving first-seen
// order. Refinement fields start empty; the refine flow edits them later.
func ParseItemList(query string) []domain.ItemSpec {
	var items []domain.ItemSpec
	seen := make(map[string]bool)

	for _, raw := range strings.Split(query, ";") {
		name := strings.TrimSpace(multiSpacePattern.ReplaceAllString(raw, " "))
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		items = append(items, domain.ItemSpec{Name: name})
	}

	return items
}

// SearchTerms extracts the distinct requested item names from specs,
// preserving order. These are the keys the optimizer looks deals up by.
func SearchTerms(items []domain.ItemSpec) []string {
	terms := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))

	for _, item := range items {
		name := strings.TrimSpace(item.Name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		terms = append(terms, name)
	}

	return terms
}

// ValidZipCode reports whether s is a 5-digit US ZIP.
func ValidZipCode(s string) bool {
	return zipCodePattern.MatchString(s)
}
