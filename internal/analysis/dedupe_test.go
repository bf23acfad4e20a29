package analysis

import (
	"testing"
	"time"

	"github.com/mhosigiri/FeedbackAI/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestDedupePosts_PreservesFirstSeenOrder(t *testing.T) {
	posts := []models.Post{
		{ID: "a", Text: "first"},
		{ID: "b", Text: "second"},
		{ID: "a", Text: "duplicate of first"},
		{ID: "c", Text: "third"},
	}

	unique := DedupePosts(posts)

	assert.Len(t, unique, 3)
	assert.Equal(t, "a", unique[0].ID)
	assert.Equal(t, "first", unique[0].Text)
	assert.Equal(t, "b", unique[1].ID)
	assert.Equal(t, "c", unique[2].ID)
}

func TestDedupePosts_Idempotent(t *testing.T) {
	posts := []models.Post{
		{ID: "a"},
		{ID: "b"},
		{ID: "a"},
	}

	once := DedupePosts(posts)
	twice := DedupePosts(once)
	assert.Equal(t, once, twice)
}

func TestDedupePosts_PermalinkFallback(t *testing.T) {
	posts := []models.Post{
		{Permalink: "https://reddit.com/r/x/1", Text: "one"},
		{Permalink: "https://reddit.com/r/x/1", Text: "one again"},
		{Permalink: "https://reddit.com/r/x/2", Text: "two"},
	}

	unique := DedupePosts(posts)
	assert.Len(t, unique, 2)
	assert.Equal(t, "one", unique[0].Text)
}

func TestDedupePosts_CompositeFallback(t *testing.T) {
	base := time.Date(2024, 11, 9, 14, 30, 12, 0, time.UTC)

	// Same author, same text, timestamps within the same minute: collapse.
	posts := []models.Post{
		{Author: "user1", Text: "coverage down", PostedAt: base},
		{Author: "user1", Text: "coverage down", PostedAt: base.Add(20 * time.Second)},
	}
	assert.Len(t, DedupePosts(posts), 1)

	// Different text keeps both.
	posts[1].Text = "coverage back up"
	assert.Len(t, DedupePosts(posts), 2)

	// Different author keeps both.
	posts[1].Text = "coverage down"
	posts[1].Author = "user2"
	assert.Len(t, DedupePosts(posts), 2)
}

func TestDedupePosts_AdapterPriorityWins(t *testing.T) {
	// The social copy arrives first, so it survives over the feedback copy.
	posts := []models.Post{
		{ID: "shared", Source: models.SourceSocial},
		{ID: "shared", Source: models.SourceFeedback},
	}

	unique := DedupePosts(posts)
	assert.Len(t, unique, 1)
	assert.Equal(t, models.SourceSocial, unique[0].Source)
}
