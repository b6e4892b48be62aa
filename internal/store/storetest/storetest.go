// Package storetest holds the conformance suite every FeedbackStore
// implementation must pass, so interchangeable backends stay observably
// identical (ordering, generated-id semantics, not-found policy).
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CareVoice/carevoice-backend/internal/store"
	"github.com/CareVoice/carevoice-backend/types"
)

// Factory constructs a fresh, empty store for each subtest.
type Factory func(t *testing.T) store.FeedbackStore

func sample(feedbackType string) *types.Feedback {
	return &types.Feedback{
		Type:        feedbackType,
		Department:  "Radiology",
		TargetRole:  "nurse",
		TargetName:  "Li",
		Description: "slow response",
		IPAddress:   "203.0.113.9",
	}
}

// Run executes the full conformance suite against stores built by factory.
func Run(t *testing.T, factory Factory) {
	ctx := context.Background()

	t.Run("empty store lists empty slice", func(t *testing.T) {
		s := factory(t)
		list, err := s.ListFeedback(ctx)
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)

		n, err := s.CountFeedback(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("create assigns monotonic ids and pending status", func(t *testing.T) {
		s := factory(t)

		id1, err := s.CreateFeedback(ctx, sample(types.FeedbackTypeComplaint))
		require.NoError(t, err)
		id2, err := s.CreateFeedback(ctx, sample(types.FeedbackTypePraise))
		require.NoError(t, err)
		assert.Greater(t, id2, id1)

		list, err := s.ListFeedback(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		for _, fb := range list {
			assert.Equal(t, types.FeedbackStatusPending, fb.Status)
			assert.False(t, fb.CreatedAt.IsZero())
		}
	})

	t.Run("create ignores caller-supplied lifecycle fields", func(t *testing.T) {
		s := factory(t)

		fb := sample(types.FeedbackTypeComplaint)
		fb.ID = 999
		fb.Status = types.FeedbackStatusResolved
		fb.CreatedAt = time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)

		id, err := s.CreateFeedback(ctx, fb)
		require.NoError(t, err)
		assert.NotEqual(t, int64(999), id)

		list, err := s.ListFeedback(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, types.FeedbackStatusPending, list[0].Status)
		assert.NotEqual(t, 1999, list[0].CreatedAt.Year())
	})

	t.Run("list orders newest first", func(t *testing.T) {
		s := factory(t)

		var ids []int64
		for _, typ := range []string{types.FeedbackTypeComplaint, types.FeedbackTypePraise, types.FeedbackTypeSuggestion} {
			id, err := s.CreateFeedback(ctx, sample(typ))
			require.NoError(t, err)
			ids = append(ids, id)
		}

		list, err := s.ListFeedback(ctx)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, ids[2], list[0].ID)
		assert.Equal(t, ids[1], list[1].ID)
		assert.Equal(t, ids[0], list[2].ID)
	})

	t.Run("update status persists and preserves createdAt", func(t *testing.T) {
		s := factory(t)

		id, err := s.CreateFeedback(ctx, sample(types.FeedbackTypeComplaint))
		require.NoError(t, err)

		before, err := s.ListFeedback(ctx)
		require.NoError(t, err)
		require.Len(t, before, 1)

		require.NoError(t, s.UpdateStatus(ctx, id, types.FeedbackStatusResolved))

		after, err := s.ListFeedback(ctx)
		require.NoError(t, err)
		require.Len(t, after, 1)
		assert.Equal(t, types.FeedbackStatusResolved, after[0].Status)
		assert.True(t, before[0].CreatedAt.Equal(after[0].CreatedAt))
	})

	t.Run("update of unknown id reports not found", func(t *testing.T) {
		s := factory(t)
		err := s.UpdateStatus(ctx, 42, types.FeedbackStatusResolved)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("delete removes record", func(t *testing.T) {
		s := factory(t)

		id, err := s.CreateFeedback(ctx, sample(types.FeedbackTypeComplaint))
		require.NoError(t, err)

		require.NoError(t, s.DeleteFeedback(ctx, id))

		n, err := s.CountFeedback(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("delete of unknown id reports not found and leaves store intact", func(t *testing.T) {
		s := factory(t)

		id, err := s.CreateFeedback(ctx, sample(types.FeedbackTypeComplaint))
		require.NoError(t, err)

		assert.ErrorIs(t, s.DeleteFeedback(ctx, id+100), store.ErrNotFound)

		n, err := s.CountFeedback(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("counts by type and creation time", func(t *testing.T) {
		s := factory(t)

		for i := 0; i < 2; i++ {
			_, err := s.CreateFeedback(ctx, sample(types.FeedbackTypeComplaint))
			require.NoError(t, err)
		}
		_, err := s.CreateFeedback(ctx, sample(types.FeedbackTypePraise))
		require.NoError(t, err)

		total, err := s.CountFeedback(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)

		complaints, err := s.CountByType(ctx, types.FeedbackTypeComplaint)
		require.NoError(t, err)
		assert.Equal(t, int64(2), complaints)

		praise, err := s.CountByType(ctx, types.FeedbackTypePraise)
		require.NoError(t, err)
		assert.Equal(t, int64(1), praise)

		none, err := s.CountByType(ctx, types.FeedbackTypeSuggestion)
		require.NoError(t, err)
		assert.Zero(t, none)

		list, err := s.ListFeedback(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, list)
		oldest := list[len(list)-1].CreatedAt

		since, err := s.CountCreatedSince(ctx, oldest)
		require.NoError(t, err)
		assert.Equal(t, int64(3), since, "CountCreatedSince is inclusive of t")

		future, err := s.CountCreatedSince(ctx, time.Now().Add(24*time.Hour))
		require.NoError(t, err)
		assert.Zero(t, future)
	})
}
