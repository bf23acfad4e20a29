package analysis

import (
	"strings"
	"testing"

	"github.com/mhosigiri/FeedbackAI/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestClassifyHeuristically(t *testing.T) {
	tests := []struct {
		name              string
		text              string
		expectedCategory  string
		expectedRating    int
		expectedSentiment string
	}{
		{
			name:              "Coverage and outage without sentiment keywords",
			text:              "Another coverage outage in my neighborhood this morning",
			expectedCategory:  CategoryNetworkCoverage,
			expectedRating:    3,
			expectedSentiment: models.SentimentNeutral,
		},
		{
			name:              "Positive coverage post clamps at five",
			text:              "Loving the awesome fast coverage!",
			expectedCategory:  CategoryNetworkCoverage,
			expectedRating:    5,
			expectedSentiment: models.SentimentPositive,
		},
		{
			name:              "Billing complaint",
			text:              "My bill has a problem, this charge is terrible",
			expectedCategory:  CategoryBilling,
			expectedRating:    1,
			expectedSentiment: models.SentimentNegative,
		},
		{
			name:              "No category keywords",
			text:              "Just switched carriers last week",
			expectedCategory:  CategoryOther,
			expectedRating:    3,
			expectedSentiment: models.SentimentNeutral,
		},
		{
			name:              "Coverage scanned before app on ties",
			text:              "The app shows no signal coverage map",
			expectedCategory:  CategoryNetworkCoverage,
			expectedRating:    3,
			expectedSentiment: models.SentimentNeutral,
		},
		{
			name:              "App only",
			text:              "The app keeps logging me out at login",
			expectedCategory:  CategoryMobileApp,
			expectedRating:    3,
			expectedSentiment: models.SentimentNeutral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ClassifyHeuristically(tt.text)
			assert.Equal(t, tt.expectedCategory, result.Category)
			assert.Equal(t, tt.expectedRating, result.Rating)
			assert.Equal(t, tt.expectedSentiment, result.Sentiment)
		})
	}
}

func TestHeuristicRating_ClampsToRange(t *testing.T) {
	// Every positive keyword at once still caps at 5.
	allPositive := strings.Join(positiveKeywords, " ")
	assert.Equal(t, 5, ClassifyHeuristically(allPositive).Rating)

	// Every negative keyword at once still bottoms out at 1.
	allNegative := strings.Join(negativeKeywords, " ")
	assert.Equal(t, 1, ClassifyHeuristically(allNegative).Rating)
}

func TestHeuristicRating_DistinctKeywordsCountOnce(t *testing.T) {
	result := ClassifyHeuristically("great great great great")
	assert.Equal(t, 4, result.Rating)
}

func TestSentimentFromRating(t *testing.T) {
	tests := []struct {
		rating   int
		expected string
	}{
		{1, models.SentimentNegative},
		{2, models.SentimentNegative},
		{3, models.SentimentNeutral},
		{4, models.SentimentPositive},
		{5, models.SentimentPositive},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, SentimentFromRating(tt.rating))
	}
}

func TestConfidenceFromRating(t *testing.T) {
	assert.InDelta(t, 0.5, ConfidenceFromRating(3), 1e-9)
	assert.InDelta(t, 0.65, ConfidenceFromRating(4), 1e-9)
	assert.InDelta(t, 0.8, ConfidenceFromRating(1), 1e-9)
	assert.InDelta(t, 0.8, ConfidenceFromRating(5), 1e-9)
}

func TestSolutionFor(t *testing.T) {
	for _, category := range CategoryOrder {
		assert.NotEmpty(t, SolutionFor(category))
	}

	// Unknown categories get the generic fallback.
	assert.Equal(t, SolutionFor(CategoryOther), SolutionFor("Unknown Category"))
}

func TestCategoryOrder_CoversAllCategories(t *testing.T) {
	assert.Len(t, CategoryOrder, 8)
	assert.Equal(t, CategoryNetworkCoverage, CategoryOrder[0])
	assert.Equal(t, CategoryOther, CategoryOrder[len(CategoryOrder)-1])
}
