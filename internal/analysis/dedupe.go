package analysis

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/mhosigiri/FeedbackAI/internal/models"
)

// DedupePosts collapses posts to a unique set, preserving first-seen order.
// Callers concatenate adapter outputs in adapter-priority order, so when two
// adapters return the same item the higher-priority copy survives.
func DedupePosts(posts []models.Post) []models.Post {
	seen := make(map[string]bool)
	var unique []models.Post

	for _, post := range posts {
		key := identityKey(post)
		if !seen[key] {
			seen[key] = true
			unique = append(unique, post)
		}
	}

	return unique
}

// identityKey derives the dedupe identity: id, falling back to permalink,
// falling back to a composite of author, minute-truncated timestamp and a
// text hash so near-identical posts without metadata still collapse.
func identityKey(post models.Post) string {
	if post.ID != "" {
		return "id:" + post.ID
	}
	if post.Permalink != "" {
		return "link:" + post.Permalink
	}

	h := fnv.New64a()
	h.Write([]byte(post.Text))
	return fmt.Sprintf("composite:%s|%d|%x",
		post.Author, post.PostedAt.Truncate(time.Minute).Unix(), h.Sum64())
}
