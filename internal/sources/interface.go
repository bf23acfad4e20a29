package sources

import (
	"context"

	"github.com/mhosigiri/FeedbackAI/internal/models"
)

// Source defines the contract for all post sources. Each source is
// independently best-effort: the pipeline treats a failed source as an empty
// contribution, never as a pipeline fault.
type Source interface {
	Name() string
	IsEnabled() bool
	FetchPosts(ctx context.Context, query models.Query) ([]models.Post, error)
}

// perBranchLimit caps each fan-out branch so total fetched volume stays
// bounded when a query spreads across several communities.
func perBranchLimit(limit, branches int) int {
	if branches < 1 {
		branches = 1
	}
	perBranch := limit/branches + 2
	if perBranch < 3 {
		perBranch = 3
	}
	return perBranch
}
