package analysis

import (
	"math"
	"strings"

	"github.com/mhosigiri/FeedbackAI/internal/models"
)

// The eight feedback categories. CategoryOrder doubles as the scan order for
// heuristic classification: the first category with a keyword hit wins, so
// this list must not be reordered.
const (
	CategoryNetworkCoverage = "Network Coverage"
	CategoryCustomerService = "Customer Service"
	CategoryBilling         = "Billing"
	CategoryPricingPlans    = "Pricing & Plans"
	CategoryDevice          = "Device and Equipment"
	CategoryStore           = "Store Experience"
	CategoryMobileApp       = "Mobile App"
	CategoryOther           = "Other"
)

// CategoryOrder lists every category in scan (and tally) order.
var CategoryOrder = []string{
	CategoryNetworkCoverage,
	CategoryCustomerService,
	CategoryBilling,
	CategoryPricingPlans,
	CategoryDevice,
	CategoryStore,
	CategoryMobileApp,
	CategoryOther,
}

var categoryKeywords = map[string][]string{
	CategoryNetworkCoverage: {"coverage", "tower", "signal", "5g", "4g", "outage", "latency", "network", "data speed"},
	CategoryCustomerService: {"support", "customer service", "rep", "agent", "call center"},
	CategoryBilling:         {"bill", "billing", "charge", "payment", "invoice"},
	CategoryPricingPlans:    {"plan", "pricing", "upgrade", "downgrade", "promotion", "offer", "deal"},
	CategoryDevice:          {"device", "phone", "tablet", "router", "gateway", "sim"},
	CategoryStore:           {"store", "retail", "in-store", "kiosk"},
	CategoryMobileApp:       {"app", "application", "login", "mytmobile"},
}

var positiveKeywords = []string{"love", "loving", "great", "awesome", "fast", "happy", "excellent", "amazing"}

// "outage" is deliberately absent here: it marks the Network Coverage
// category but is not a sentiment signal on its own.
var negativeKeywords = []string{"slow", "bad", "terrible", "hate", "angry", "frustrating", "issue", "problem", "dropped"}

// categorySolutions maps each category to its default remediation text.
var categorySolutions = map[string]string{
	CategoryNetworkCoverage: "Dispatch a network engineering review of tower capacity and signal strength in the affected area.",
	CategoryCustomerService: "Route to the customer care escalation queue and follow up within one business day.",
	CategoryBilling:         "Have the billing team audit the most recent invoice and reverse any incorrect charges.",
	CategoryPricingPlans:    "Offer a plan consultation to match the customer with a better-fitting rate plan.",
	CategoryDevice:          "Run remote device diagnostics and offer a replacement or firmware update if needed.",
	CategoryStore:           "Share the feedback with the local store manager and review staffing during peak hours.",
	CategoryMobileApp:       "Forward to the app team to reproduce the issue and prioritize a fix in the next release.",
	CategoryOther:           "Acknowledge the feedback and route it to the general support team for triage.",
}

// HeuristicResult is the output of the keyword-only classifier.
type HeuristicResult struct {
	Category  string
	Rating    int
	Sentiment string
}

// ClassifyHeuristically classifies text with the fixed keyword tables. It is
// deterministic and always available, serving as the fallback when no
// external enrichment is supplied.
func ClassifyHeuristically(text string) HeuristicResult {
	rating := heuristicRating(text)
	return HeuristicResult{
		Category:  heuristicCategory(text),
		Rating:    rating,
		Sentiment: SentimentFromRating(rating),
	}
}

func heuristicCategory(text string) string {
	lowered := strings.ToLower(text)
	for _, category := range CategoryOrder {
		for _, keyword := range categoryKeywords[category] {
			if strings.Contains(lowered, keyword) {
				return category
			}
		}
	}
	return CategoryOther
}

// heuristicRating starts at the neutral midpoint and shifts by one per
// distinct keyword found. Multiple occurrences of the same keyword count once.
func heuristicRating(text string) int {
	lowered := strings.ToLower(text)
	score := 3
	for _, token := range positiveKeywords {
		if strings.Contains(lowered, token) {
			score++
		}
	}
	for _, token := range negativeKeywords {
		if strings.Contains(lowered, token) {
			score--
		}
	}
	if score < 1 {
		score = 1
	}
	if score > 5 {
		score = 5
	}
	return score
}

// SentimentFromRating derives sentiment from a 1-5 rating.
func SentimentFromRating(rating int) string {
	switch {
	case rating >= 4:
		return models.SentimentPositive
	case rating <= 2:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

// ConfidenceFromRating derives confidence from the rating's distance to the
// neutral midpoint, capped at 0.95. External confidence signals are ignored.
func ConfidenceFromRating(rating int) float64 {
	return math.Min(0.95, 0.5+math.Abs(float64(rating)-3)*0.15)
}

// SolutionFor returns the default remediation text for a category.
func SolutionFor(category string) string {
	if solution, ok := categorySolutions[category]; ok {
		return solution
	}
	return categorySolutions[CategoryOther]
}

// ValidCategory reports whether category is one of the eight known categories.
func ValidCategory(category string) bool {
	_, ok := categorySolutions[category]
	return ok
}

// ValidSentiment reports whether sentiment is one of the three known labels.
func ValidSentiment(sentiment string) bool {
	return sentiment == models.SentimentPositive ||
		sentiment == models.SentimentNeutral ||
		sentiment == models.SentimentNegative
}
