package analysis

import (
	"testing"

	"github.com/mhosigiri/FeedbackAI/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestRelevanceFilter_BrandVariants(t *testing.T) {
	filter := NewRelevanceFilter("T-Mobile")
	query := models.Query{Text: "coverage"}

	tests := []struct {
		name     string
		text     string
		expected bool
	}{
		{"Literal name", "T-Mobile coverage is solid here", true},
		{"Lowercase", "t-mobile coverage dropped again", true},
		{"No-space variant", "TMobile coverage in my area", true},
		{"Space variant", "T Mobile coverage downtown", true},
		{"Abbreviation", "TMO coverage keeps improving", true},
		{"No brand mention", "Verizon coverage is better", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, filter.IsRelevant(tt.text, query))
		})
	}
}

func TestRelevanceFilter_KeywordsNarrow(t *testing.T) {
	filter := NewRelevanceFilter("T-Mobile")

	post := "T-Mobile store was busy today"

	// Brand mention alone is enough when no keywords are supplied.
	assert.True(t, filter.IsRelevant(post, models.Query{Text: "retail"}))

	// Non-matching keywords exclude the post even with a brand mention.
	excluded := models.Query{Text: "billing", Keywords: []string{"5g", "outage"}}
	assert.False(t, filter.IsRelevant(post, excluded))

	// A matching keyword brings the same post back in.
	included := models.Query{Text: "billing", Keywords: []string{"store"}}
	assert.True(t, filter.IsRelevant(post, included))

	// A free-text query token also satisfies the narrowing requirement.
	tokenMatch := models.Query{Text: "busy stores", Keywords: []string{"5g"}}
	assert.True(t, filter.IsRelevant(post, tokenMatch))
}

func TestRelevanceFilter_KeywordsNeverReplaceBrandCheck(t *testing.T) {
	filter := NewRelevanceFilter("T-Mobile")

	query := models.Query{Text: "outage", Keywords: []string{"coverage"}}
	assert.False(t, filter.IsRelevant("AT&T coverage outage everywhere", query))
}
