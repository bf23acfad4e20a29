package storage

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/mhosigiri/FeedbackAI/internal/models"
	"github.com/sirupsen/logrus"
)

const recordPrefix = "records/"

// SaveFeedback writes a feedback record as a timestamped JSON blob. Records
// are named so that lexicographic order matches chronological order.
func SaveFeedback(store Store, record models.FeedbackRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	if record.ID == "" {
		record.ID = fmt.Sprintf("feedback-%d", record.CreatedAt.UnixNano())
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal feedback record: %w", err)
	}

	filename := fmt.Sprintf("%s%s-%s.json",
		recordPrefix, record.CreatedAt.UTC().Format("2006-01-02-15-04-05"), record.ID)
	return store.Store(filename, data)
}

// ListFeedback returns up to limit feedback records, newest first. Records
// that fail to parse are skipped, not fatal.
func ListFeedback(store Store, limit int) ([]models.FeedbackRecord, error) {
	names, err := store.List(recordPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback records: %w", err)
	}

	// Newest first per the timestamped naming scheme.
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	var records []models.FeedbackRecord
	for _, name := range names {
		if len(records) >= limit {
			break
		}

		data, err := store.Retrieve(name)
		if err != nil {
			logrus.Warnf("Failed to retrieve feedback record %s: %v", name, err)
			continue
		}

		var record models.FeedbackRecord
		if err := json.Unmarshal(data, &record); err != nil {
			logrus.Warnf("Skipping malformed feedback record %s: %v", name, err)
			continue
		}
		records = append(records, record)
	}

	return records, nil
}
