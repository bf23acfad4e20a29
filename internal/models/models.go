package models

import "time"

// Sentiment labels attached to a classified post.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// Post source identifiers.
const (
	SourceSocial   = "social"
	SourceFeedback = "feedback"
)

// Location is a best-effort geo tag for a post. Raw keeps the original hint
// text whenever no structured match was found.
type Location struct {
	City      string  `json:"city,omitempty"`
	State     string  `json:"state,omitempty"`
	Country   string  `json:"country,omitempty"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
	Raw       string  `json:"raw,omitempty"`
}

// Post is a single piece of customer text pulled from one of the sources.
// Adapters produce it and the pipeline treats it as immutable, except that
// classification may attach a refined Location when the adapter supplied none.
type Post struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	PostedAt  time.Time `json:"posted_at"`
	Location  *Location `json:"location,omitempty"`
	Permalink string    `json:"permalink,omitempty"`
	Source    string    `json:"source"`
}

// ClassifiedPost is the enriched view of a Post. It never mutates the
// embedded Post beyond the location refinement noted above.
type ClassifiedPost struct {
	Post       Post     `json:"post"`
	Sentiment  string   `json:"sentiment"`
	Confidence float64  `json:"confidence"`
	Rating     int      `json:"rating"`
	Category   string   `json:"category"`
	Issues     []string `json:"issues"`
	Delights   []string `json:"delights"`
	Solution   string   `json:"solution,omitempty"`
}

// Timings records per-stage wall-clock durations for one pipeline run.
type Timings struct {
	SourceMS map[string]int64 `json:"source_ms"`
	EnrichMS int64            `json:"enrich_ms"`
	TotalMS  int64            `json:"total_ms"`
}

// AggregateResult is the full output of one pipeline run. Built fresh per
// request, never persisted by the pipeline itself.
type AggregateResult struct {
	Classified  []ClassifiedPost `json:"sentiments"`
	CSIScore    float64          `json:"csi_score"`
	Summary     string           `json:"summary"`
	IssueCounts map[string]int   `json:"issue_counts"`
	Timings     Timings          `json:"timings"`
}

// Query describes one analysis request.
type Query struct {
	Text         string   `json:"query"`
	Keywords     []string `json:"keywords,omitempty"`
	Sources      []string `json:"sources,omitempty"`
	Subreddits   []string `json:"subreddits,omitempty"`
	Limit        int      `json:"limit"`
	LocationHint string   `json:"location_hint,omitempty"`
}

// FeedbackRecord is a customer-submitted feedback entry as stored by the
// surrounding application and read back by the feedback source adapter.
type FeedbackRecord struct {
	ID           string    `json:"id"`
	Author       string    `json:"author"`
	Text         string    `json:"text"`
	CreatedAt    time.Time `json:"created_at"`
	LocationHint string    `json:"location_hint,omitempty"`
}
