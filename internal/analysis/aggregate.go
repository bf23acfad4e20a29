package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/mhosigiri/FeedbackAI/internal/models"
)

// NoDiscussionsSummary is the fixed summary used when the classified set is empty.
const NoDiscussionsSummary = "No discussions detected for the current filter."

// TallyCategories counts classified posts per category. All eight categories
// are always present, zero-filled.
func TallyCategories(classified []models.ClassifiedPost) map[string]int {
	tally := make(map[string]int, len(CategoryOrder))
	for _, category := range CategoryOrder {
		tally[category] = 0
	}
	for _, item := range classified {
		tally[item.Category]++
	}
	return tally
}

// ComputeCSI computes the 0-100 customer satisfaction index. The formula
// centers on 50: an empty or all-neutral set scores exactly 50, maximally
// positive sets approach 100 and maximally negative sets approach 0.
func ComputeCSI(classified []models.ClassifiedPost) float64 {
	if len(classified) == 0 {
		return 50.0
	}

	var positiveWeight, negativeWeight int
	for _, item := range classified {
		switch item.Sentiment {
		case models.SentimentPositive:
			positiveWeight += item.Rating
		case models.SentimentNegative:
			negativeWeight += 6 - item.Rating
		}
	}

	raw := (float64(positiveWeight-negativeWeight) / float64(len(classified)*5)) * 100
	score := math.Round((50+raw/2)*100) / 100
	return math.Max(0.0, math.Min(100.0, score))
}

// Summarize picks the summary text: an externally supplied summary wins
// verbatim, otherwise one is synthesized from the category carrying the most
// combined issues and delights.
func Summarize(classified []models.ClassifiedPost, csiScore float64, externalSummary string) string {
	if externalSummary != "" {
		return externalSummary
	}
	if len(classified) == 0 {
		return NoDiscussionsSummary
	}

	leading := classified[0]
	for _, item := range classified[1:] {
		if len(item.Issues)+len(item.Delights) > len(leading.Issues)+len(leading.Delights) {
			leading = item
		}
	}

	return fmt.Sprintf("CSI %v: dominant signal around %s.", csiScore, strings.ToLower(leading.Category))
}

// Aggregate assembles the final result from the classified set. Timings are
// filled in by the pipeline afterwards.
func Aggregate(classified []models.ClassifiedPost, externalSummary string) *models.AggregateResult {
	csiScore := ComputeCSI(classified)
	return &models.AggregateResult{
		Classified:  classified,
		CSIScore:    csiScore,
		Summary:     Summarize(classified, csiScore, externalSummary),
		IssueCounts: TallyCategories(classified),
	}
}
