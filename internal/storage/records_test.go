package storage

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/mhosigiri/FeedbackAI/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockStore is a mock implementation of the Store interface
type MockStore struct {
	mock.Mock
}

func (m *MockStore) EnsureReady() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockStore) Store(filename string, data []byte) error {
	args := m.Called(filename, data)
	return args.Error(0)
}

func (m *MockStore) Retrieve(filename string) ([]byte, error) {
	args := m.Called(filename)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *MockStore) List(prefix string) ([]string, error) {
	args := m.Called(prefix)
	names, _ := args.Get(0).([]string)
	return names, args.Error(1)
}

func (m *MockStore) Delete(filename string) error {
	args := m.Called(filename)
	return args.Error(0)
}

func TestSaveFeedback_FillsDefaults(t *testing.T) {
	store := &MockStore{}

	var saved models.FeedbackRecord
	store.On("Store", mock.AnythingOfType("string"), mock.AnythingOfType("[]uint8")).
		Run(func(args mock.Arguments) {
			require.NoError(t, json.Unmarshal(args.Get(1).([]byte), &saved))
		}).
		Return(nil)

	err := SaveFeedback(store, models.FeedbackRecord{Text: "Store visit was great", Author: "customer1"})
	require.NoError(t, err)

	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())
	assert.Equal(t, "Store visit was great", saved.Text)
	store.AssertExpectations(t)
}

func TestSaveFeedback_UsesTimestampedNames(t *testing.T) {
	store := &MockStore{}
	store.On("Store", "records/2024-11-09-12-00-00-fb-1.json", mock.Anything).Return(nil)

	record := models.FeedbackRecord{
		ID:        "fb-1",
		Text:      "Billing looks wrong",
		CreatedAt: time.Date(2024, 11, 9, 12, 0, 0, 0, time.UTC),
	}

	require.NoError(t, SaveFeedback(store, record))
	store.AssertExpectations(t)
}

func TestListFeedback_NewestFirstAndLimited(t *testing.T) {
	older := models.FeedbackRecord{ID: "old", Text: "old entry"}
	newer := models.FeedbackRecord{ID: "new", Text: "new entry"}
	olderData, _ := json.Marshal(older)
	newerData, _ := json.Marshal(newer)

	store := &MockStore{}
	store.On("List", "records/").Return([]string{
		"records/2024-11-08-09-00-00-old.json",
		"records/2024-11-09-09-00-00-new.json",
	}, nil)
	store.On("Retrieve", "records/2024-11-09-09-00-00-new.json").Return(newerData, nil)
	store.On("Retrieve", "records/2024-11-08-09-00-00-old.json").Return(olderData, nil)

	records, err := ListFeedback(store, 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "new", records[0].ID)
	assert.Equal(t, "old", records[1].ID)

	// Limit caps how many records are retrieved at all.
	limited, err := ListFeedback(store, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "new", limited[0].ID)
}

func TestListFeedback_SkipsMalformedRecords(t *testing.T) {
	good := models.FeedbackRecord{ID: "good", Text: "fine"}
	goodData, _ := json.Marshal(good)

	store := &MockStore{}
	store.On("List", "records/").Return([]string{
		"records/2024-11-09-09-00-01-bad.json",
		"records/2024-11-09-09-00-00-good.json",
	}, nil)
	store.On("Retrieve", "records/2024-11-09-09-00-01-bad.json").Return([]byte("not json"), nil)
	store.On("Retrieve", "records/2024-11-09-09-00-00-good.json").Return(goodData, nil)

	records, err := ListFeedback(store, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "good", records[0].ID)
}
