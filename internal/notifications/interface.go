package notifications

import "github.com/mhosigiri/FeedbackAI/internal/models"

// Notifier defines the contract for digest delivery.
type Notifier interface {
	SendDigest(result *models.AggregateResult) error
}
