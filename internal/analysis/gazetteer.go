package analysis

import (
	"strings"

	"github.com/mhosigiri/FeedbackAI/internal/models"
)

type gazetteerEntry struct {
	needle    string
	city      string
	state     string
	latitude  float64
	longitude float64
}

// The gazetteer is scanned top to bottom and the first match wins, so entry
// order is part of the contract. "nyc" must stay after "new york" so the
// structured match reports the spelled-out needle when both appear.
var gazetteer = []gazetteerEntry{
	{"dallas", "Dallas", "TX", 32.7767, -96.7970},
	{"new york", "New York", "NY", 40.7128, -74.0060},
	{"nyc", "New York", "NY", 40.7128, -74.0060},
	{"seattle", "Seattle", "WA", 47.6062, -122.3321},
	{"houston", "Houston", "TX", 29.7604, -95.3698},
	{"los angeles", "Los Angeles", "CA", 34.0522, -118.2437},
	{"chicago", "Chicago", "IL", 41.8781, -87.6298},
	{"miami", "Miami", "FL", 25.7617, -80.1918},
}

// InferLocation searches the gazetteer against the post text plus any
// metadata hints. With no structured match but a caller-supplied hint, the
// hint is preserved raw; otherwise no location is returned.
func InferLocation(text string, hints []string, callerHint string) *models.Location {
	parts := []string{strings.ToLower(text)}
	for _, hint := range hints {
		if hint != "" {
			parts = append(parts, strings.ToLower(hint))
		}
	}
	if callerHint != "" {
		parts = append(parts, strings.ToLower(callerHint))
	}
	haystack := strings.Join(parts, " ")

	for _, entry := range gazetteer {
		if strings.Contains(haystack, entry.needle) {
			return &models.Location{
				City:      entry.city,
				State:     entry.state,
				Country:   "USA",
				Latitude:  entry.latitude,
				Longitude: entry.longitude,
				Raw:       entry.needle,
			}
		}
	}

	if callerHint != "" {
		return &models.Location{Raw: callerHint}
	}
	return nil
}
