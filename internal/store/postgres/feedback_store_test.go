package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CareVoice/carevoice-backend/internal/store"
	"github.com/CareVoice/carevoice-backend/types"
)

func setupMockStore(t *testing.T) (*FeedbackStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return &FeedbackStore{db: mock}, mock
}

func testFeedback() *types.Feedback {
	return &types.Feedback{
		Type:           types.FeedbackTypeComplaint,
		Department:     "Radiology",
		TargetRole:     "nurse",
		TargetName:     "Li",
		Description:    "slow response",
		SubmitterName:  "Wang",
		SubmitterPhone: "13800000000",
		IPAddress:      "203.0.113.9",
	}
}

func TestFeedbackStore_CreateFeedback(t *testing.T) {
	s, mock := setupMockStore(t)
	fb := testFeedback()

	t.Run("returns generated id", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO feedbacks").
			WithArgs(fb.Type, fb.Department, fb.TargetRole, fb.TargetName,
				fb.Description, fb.SubmitterName, fb.SubmitterPhone, fb.IPAddress).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))

		id, err := s.CreateFeedback(context.Background(), fb)
		require.NoError(t, err)
		assert.Equal(t, int64(7), id)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wraps backend failure", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO feedbacks").
			WithArgs(fb.Type, fb.Department, fb.TargetRole, fb.TargetName,
				fb.Description, fb.SubmitterName, fb.SubmitterPhone, fb.IPAddress).
			WillReturnError(assert.AnError)

		_, err := s.CreateFeedback(context.Background(), fb)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, store.ErrNotFound)
	})
}

func TestFeedbackStore_ListFeedback(t *testing.T) {
	s, mock := setupMockStore(t)
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	columns := []string{
		"id", "type", "department", "target_role", "target_name", "description",
		"submitter_name", "submitter_phone", "ip_address", "status", "created_at",
	}

	t.Run("returns rows newest first", func(t *testing.T) {
		rows := pgxmock.NewRows(columns).
			AddRow(int64(2), "praise", "Pediatrics", "doctor", "", "great care",
				"", "", "198.51.100.4", "pending", created.Add(time.Hour)).
			AddRow(int64(1), "complaint", "Radiology", "nurse", "Li", "slow response",
				"Wang", "", "203.0.113.9", "resolved", created)

		mock.ExpectQuery("SELECT (.+) FROM feedbacks").WillReturnRows(rows)

		list, err := s.ListFeedback(context.Background())
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, int64(2), list[0].ID)
		assert.Equal(t, "resolved", list[1].Status)
		assert.True(t, list[1].CreatedAt.Equal(created))
	})

	t.Run("empty result yields empty slice", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM feedbacks").
			WillReturnRows(pgxmock.NewRows(columns))

		list, err := s.ListFeedback(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)
	})
}

func TestFeedbackStore_UpdateStatus(t *testing.T) {
	s, mock := setupMockStore(t)

	t.Run("updates existing record", func(t *testing.T) {
		mock.ExpectExec("UPDATE feedbacks SET status").
			WithArgs("resolved", int64(1)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		assert.NoError(t, s.UpdateStatus(context.Background(), 1, "resolved"))
	})

	t.Run("unknown id maps to ErrNotFound", func(t *testing.T) {
		mock.ExpectExec("UPDATE feedbacks SET status").
			WithArgs("resolved", int64(99)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := s.UpdateStatus(context.Background(), 99, "resolved")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestFeedbackStore_DeleteFeedback(t *testing.T) {
	s, mock := setupMockStore(t)

	t.Run("deletes existing record", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM feedbacks").
			WithArgs(int64(1)).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		assert.NoError(t, s.DeleteFeedback(context.Background(), 1))
	})

	t.Run("unknown id maps to ErrNotFound", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM feedbacks").
			WithArgs(int64(99)).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		assert.ErrorIs(t, s.DeleteFeedback(context.Background(), 99), store.ErrNotFound)
	})
}

func TestFeedbackStore_Counts(t *testing.T) {
	s, mock := setupMockStore(t)

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(5)))
	total, err := s.CountFeedback(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)

	mock.ExpectQuery("SELECT COUNT(.+) WHERE type").
		WithArgs("complaint").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(3)))
	byType, err := s.CountByType(context.Background(), "complaint")
	require.NoError(t, err)
	assert.Equal(t, int64(3), byType)

	midnight := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT COUNT(.+) WHERE created_at").
		WithArgs(midnight).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(2)))
	today, err := s.CountCreatedSince(context.Background(), midnight)
	require.NoError(t, err)
	assert.Equal(t, int64(2), today)
}

// blockedPool stands in for a pool with every connection busy: each call
// waits on the operation context and returns its error.
type blockedPool struct{}

func (blockedPool) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	<-ctx.Done()
	return pgconn.CommandTag{}, ctx.Err()
}

func (blockedPool) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (blockedPool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	<-ctx.Done()
	return errRow{err: ctx.Err()}
}

type errRow struct{ err error }

func (r errRow) Scan(dest ...any) error { return r.err }

func TestFeedbackStore_SaturatedPoolFailsBounded(t *testing.T) {
	s := &FeedbackStore{db: blockedPool{}, opTimeout: 20 * time.Millisecond}
	ctx := context.Background()

	start := time.Now()
	_, err := s.CreateFeedback(ctx, testFeedback())
	assert.ErrorIs(t, err, store.ErrUnavailable)
	assert.Less(t, time.Since(start), 5*time.Second, "operation must fail within the bounded wait, not hang")

	_, err = s.ListFeedback(ctx)
	assert.ErrorIs(t, err, store.ErrUnavailable)

	assert.ErrorIs(t, s.UpdateStatus(ctx, 1, types.FeedbackStatusResolved), store.ErrUnavailable)
	assert.ErrorIs(t, s.DeleteFeedback(ctx, 1), store.ErrUnavailable)

	_, err = s.CountFeedback(ctx)
	assert.ErrorIs(t, err, store.ErrUnavailable)
}
