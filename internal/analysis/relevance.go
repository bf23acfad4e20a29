package analysis

import (
	"strings"

	"github.com/mhosigiri/FeedbackAI/internal/models"
)

// Known brand abbreviations, keyed by the lowercased brand name.
var brandAbbreviations = map[string]string{
	"t-mobile": "tmo",
}

// RelevanceFilter decides whether a post is in scope for a query. A post is
// relevant iff the brand appears in the text; query keywords narrow the match
// further but never replace the brand check.
type RelevanceFilter struct {
	variants []string
}

// NewRelevanceFilter builds a filter for the given brand name. Accepted
// variants are the literal name, a no-space variant, a space-for-hyphen
// variant and the common abbreviation, all case-insensitive.
func NewRelevanceFilter(brand string) *RelevanceFilter {
	lowered := strings.ToLower(strings.TrimSpace(brand))

	seen := make(map[string]bool)
	var variants []string
	add := func(v string) {
		if v != "" && !seen[v] {
			seen[v] = true
			variants = append(variants, v)
		}
	}

	add(lowered)
	add(strings.ReplaceAll(lowered, "-", ""))
	add(strings.ReplaceAll(lowered, "-", " "))
	add(strings.ReplaceAll(lowered, " ", ""))
	add(brandAbbreviations[lowered])

	return &RelevanceFilter{variants: variants}
}

// IsRelevant reports whether text mentions the brand and, when the query
// carries keywords, matches at least one keyword or free-text query token.
func (f *RelevanceFilter) IsRelevant(text string, query models.Query) bool {
	lowered := strings.ToLower(text)

	brandHit := false
	for _, variant := range f.variants {
		if strings.Contains(lowered, variant) {
			brandHit = true
			break
		}
	}
	if !brandHit {
		return false
	}

	if len(query.Keywords) == 0 {
		return true
	}

	for _, keyword := range query.Keywords {
		if keyword == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(keyword)) {
			return true
		}
	}

	for _, token := range strings.Fields(strings.ToLower(query.Text)) {
		if strings.Contains(lowered, token) {
			return true
		}
	}

	return false
}
