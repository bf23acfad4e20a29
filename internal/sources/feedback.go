package sources

import (
	"context"
	"fmt"

	"github.com/mhosigiri/FeedbackAI/internal/analysis"
	"github.com/mhosigiri/FeedbackAI/internal/models"
	"github.com/mhosigiri/FeedbackAI/internal/storage"
)

// FeedbackSource surfaces customer-submitted feedback records from the blob
// store as posts, newest first.
type FeedbackSource struct {
	store storage.Store
}

// NewFeedbackSource creates a new stored-feedback source
func NewFeedbackSource(store storage.Store) *FeedbackSource {
	return &FeedbackSource{store: store}
}

func (f *FeedbackSource) Name() string {
	return models.SourceFeedback
}

func (f *FeedbackSource) IsEnabled() bool {
	return f.store != nil
}

func (f *FeedbackSource) FetchPosts(ctx context.Context, query models.Query) ([]models.Post, error) {
	if !f.IsEnabled() {
		return nil, nil
	}

	records, err := storage.ListFeedback(f.store, query.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load feedback records: %w", err)
	}

	var posts []models.Post
	for _, record := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		hint := record.LocationHint
		if hint == "" {
			hint = query.LocationHint
		}

		posts = append(posts, models.Post{
			ID:       record.ID,
			Text:     record.Text,
			Author:   record.Author,
			PostedAt: record.CreatedAt,
			Location: analysis.InferLocation(record.Text, nil, hint),
			Source:   models.SourceFeedback,
		})
	}

	return posts, nil
}
