// Package memory provides an in-process FeedbackStore used by tests and
// zero-dependency development deployments.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/CareVoice/carevoice-backend/internal/store"
	"github.com/CareVoice/carevoice-backend/types"
)

// FeedbackStore keeps records in a map guarded by a mutex. Ids are assigned
// from a monotonically increasing counter, mirroring the auto-increment
// semantics of the relational backends.
type FeedbackStore struct {
	mu      sync.Mutex
	records map[int64]types.Feedback
	nextID  int64
	now     func() time.Time
}

var _ store.FeedbackStore = (*FeedbackStore)(nil)

// NewFeedbackStore creates an empty in-memory store.
func NewFeedbackStore() *FeedbackStore {
	return NewFeedbackStoreWithClock(time.Now)
}

// NewFeedbackStoreWithClock creates a store whose createdAt timestamps come
// from the supplied clock. Tests use this to advance simulated time.
func NewFeedbackStoreWithClock(now func() time.Time) *FeedbackStore {
	return &FeedbackStore{
		records: make(map[int64]types.Feedback),
		nextID:  1,
		now:     now,
	}
}

func (s *FeedbackStore) CreateFeedback(ctx context.Context, fb *types.Feedback) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := *fb
	rec.ID = s.nextID
	rec.Status = types.FeedbackStatusPending
	rec.CreatedAt = s.now()
	s.records[rec.ID] = rec
	s.nextID++

	return rec.ID, nil
}

func (s *FeedbackStore) ListFeedback(ctx context.Context) ([]types.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]types.Feedback, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			// Stable order for records created within the same clock tick.
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

func (s *FeedbackStore) UpdateStatus(ctx context.Context, id int64, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return store.ErrNotFound
	}
	rec.Status = status
	s.records[id] = rec
	return nil
}

func (s *FeedbackStore) DeleteFeedback(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.records, id)
	return nil
}

func (s *FeedbackStore) CountFeedback(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.records)), nil
}

func (s *FeedbackStore) CountByType(ctx context.Context, feedbackType string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for _, rec := range s.records {
		if rec.Type == feedbackType {
			n++
		}
	}
	return n, nil
}

func (s *FeedbackStore) CountCreatedSince(ctx context.Context, t time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for _, rec := range s.records {
		if !rec.CreatedAt.Before(t) {
			n++
		}
	}
	return n, nil
}
