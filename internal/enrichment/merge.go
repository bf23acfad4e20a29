package enrichment

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mhosigiri/FeedbackAI/internal/analysis"
	"github.com/mhosigiri/FeedbackAI/internal/models"
	"github.com/sirupsen/logrus"
)

// Item is one post's worth of external classification output. Every field is
// independently optional; each is validated on its own at merge time so
// partial or noisy output still contributes what it can.
type Item struct {
	ID        string   `json:"id"`
	Rating    *float64 `json:"rating,omitempty"`
	Category  *string  `json:"category,omitempty"`
	Sentiment *string  `json:"sentiment,omitempty"`
	Location  *string  `json:"location,omitempty"`
	Insight   *string  `json:"insight,omitempty"`
	Solution  *string  `json:"solution,omitempty"`
}

type payloadEnvelope struct {
	Items   []json.RawMessage `json:"items"`
	Summary string            `json:"summary"`
}

// ParsePayload decodes the raw enrichment response into a per-post item map
// plus the optional summary. A payload that fails to parse as the expected
// envelope is discarded entirely; individual malformed entries are skipped.
func ParsePayload(raw string) (map[string]Item, string) {
	if strings.TrimSpace(raw) == "" {
		return map[string]Item{}, ""
	}

	var envelope payloadEnvelope
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		logrus.Warnf("Discarding malformed enrichment payload: %v", err)
		return map[string]Item{}, ""
	}

	items := make(map[string]Item, len(envelope.Items))
	for _, rawItem := range envelope.Items {
		var item Item
		if err := json.Unmarshal(rawItem, &item); err != nil {
			logrus.Warnf("Skipping malformed enrichment entry: %v", err)
			continue
		}
		if item.ID == "" {
			continue
		}
		items[item.ID] = item
	}

	return items, envelope.Summary
}

// MergePost combines heuristic classification with one post's external
// enrichment. Each well-typed external field overrides its heuristic
// counterpart; everything else falls back to the heuristic value.
func MergePost(post models.Post, item *Item) models.ClassifiedPost {
	heuristic := analysis.ClassifyHeuristically(post.Text)

	rating := heuristic.Rating
	if item != nil && item.Rating != nil {
		if v := int(*item.Rating); v >= 1 && v <= 5 {
			rating = v
		}
	}

	sentiment := analysis.SentimentFromRating(rating)
	if item != nil && item.Sentiment != nil && analysis.ValidSentiment(*item.Sentiment) {
		sentiment = *item.Sentiment
	}

	category := heuristic.Category
	if item != nil && item.Category != nil && analysis.ValidCategory(*item.Category) {
		category = *item.Category
	}

	// Classification may refine the location, but only when the adapter
	// produced nothing structured.
	if item != nil && item.Location != nil && *item.Location != "" {
		if post.Location == nil || post.Location.City == "" {
			post.Location = &models.Location{Raw: *item.Location}
		}
	}

	insight := ""
	if item != nil && item.Insight != nil {
		insight = *item.Insight
	}

	issues := []string{}
	delights := []string{}
	switch sentiment {
	case models.SentimentNegative:
		if insight == "" {
			insight = fmt.Sprintf("Negative feedback on %s", strings.ToLower(category))
		}
		issues = append(issues, insight)
	case models.SentimentPositive:
		if insight == "" {
			insight = fmt.Sprintf("Positive note on %s", strings.ToLower(category))
		}
		delights = append(delights, insight)
	}

	solution := analysis.SolutionFor(category)
	if item != nil && item.Solution != nil && *item.Solution != "" {
		solution = *item.Solution
	}

	return models.ClassifiedPost{
		Post:       post,
		Sentiment:  sentiment,
		Confidence: analysis.ConfidenceFromRating(rating),
		Rating:     rating,
		Category:   category,
		Issues:     issues,
		Delights:   delights,
		Solution:   solution,
	}
}

// MergeAll merges every post against the enrichment map. Posts without an
// entry are classified heuristically.
func MergeAll(posts []models.Post, items map[string]Item) []models.ClassifiedPost {
	classified := make([]models.ClassifiedPost, 0, len(posts))
	for _, post := range posts {
		var item *Item
		if entry, ok := items[post.ID]; ok {
			item = &entry
		}
		classified = append(classified, MergePost(post, item))
	}
	return classified
}
