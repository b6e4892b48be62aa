// Package postgres implements the FeedbackStore contract over PostgreSQL
// using a pooled pgx connection.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CareVoice/carevoice-backend/internal/store"
	"github.com/CareVoice/carevoice-backend/types"
)

// db is the subset of pgxpool.Pool used by the store. pgxmock satisfies it
// in unit tests.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// defaultOpTimeout bounds a single store operation, pool-acquire wait
// included, when the caller passes no explicit timeout.
const defaultOpTimeout = 5 * time.Second

// FeedbackStore implements store.FeedbackStore backed by PostgreSQL.
type FeedbackStore struct {
	db        db
	opTimeout time.Duration
}

var _ store.FeedbackStore = (*FeedbackStore)(nil)

// NewFeedbackStore creates a feedback store backed by the given pool.
// opTimeout bounds each operation: when every pooled connection is busy,
// callers queue for one up to this long and then fail with ErrUnavailable
// instead of hanging on the request context.
func NewFeedbackStore(pool *pgxpool.Pool, opTimeout time.Duration) *FeedbackStore {
	if opTimeout <= 0 {
		opTimeout = defaultOpTimeout
	}
	return &FeedbackStore{db: pool, opTimeout: opTimeout}
}

// opCtx derives the bounded context every operation runs under. A zero
// opTimeout leaves the caller's context as is.
func (s *FeedbackStore) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.opTimeout)
}

func (s *FeedbackStore) CreateFeedback(ctx context.Context, fb *types.Feedback) (int64, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	query := `
		INSERT INTO feedbacks (type, department, target_role, target_name, description, submitter_name, submitter_phone, ip_address)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	var id int64
	err := s.db.QueryRow(ctx, query,
		fb.Type,
		fb.Department,
		fb.TargetRole,
		fb.TargetName,
		fb.Description,
		fb.SubmitterName,
		fb.SubmitterPhone,
		fb.IPAddress,
	).Scan(&id)
	if err != nil {
		return 0, translateError(err, "insert feedback")
	}

	return id, nil
}

func (s *FeedbackStore) ListFeedback(ctx context.Context) ([]types.Feedback, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	query := `
		SELECT id, type, department, target_role, target_name, description, submitter_name, submitter_phone, ip_address, status, created_at
		FROM feedbacks
		ORDER BY created_at DESC, id DESC`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, translateError(err, "list feedback")
	}
	defer rows.Close()

	out := make([]types.Feedback, 0)
	for rows.Next() {
		var fb types.Feedback
		if err := rows.Scan(
			&fb.ID,
			&fb.Type,
			&fb.Department,
			&fb.TargetRole,
			&fb.TargetName,
			&fb.Description,
			&fb.SubmitterName,
			&fb.SubmitterPhone,
			&fb.IPAddress,
			&fb.Status,
			&fb.CreatedAt,
		); err != nil {
			return nil, translateError(err, "scan feedback row")
		}
		out = append(out, fb)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err, "iterate feedback rows")
	}

	return out, nil
}

func (s *FeedbackStore) UpdateStatus(ctx context.Context, id int64, status string) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	tag, err := s.db.Exec(ctx,
		`UPDATE feedbacks SET status = $1 WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return translateError(err, "update feedback status")
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *FeedbackStore) DeleteFeedback(ctx context.Context, id int64) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	tag, err := s.db.Exec(ctx, `DELETE FROM feedbacks WHERE id = $1`, id)
	if err != nil {
		return translateError(err, "delete feedback")
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *FeedbackStore) CountFeedback(ctx context.Context) (int64, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM feedbacks`)
}

func (s *FeedbackStore) CountByType(ctx context.Context, feedbackType string) (int64, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM feedbacks WHERE type = $1`, feedbackType)
}

func (s *FeedbackStore) CountCreatedSince(ctx context.Context, t time.Time) (int64, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM feedbacks WHERE created_at >= $1`, t)
}

func (s *FeedbackStore) count(ctx context.Context, query string, args ...any) (int64, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var n int64
	if err := s.db.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, translateError(err, "count feedback")
	}
	return n, nil
}

// translateError maps driver failures onto the store error taxonomy so
// callers never depend on pgx internals.
func translateError(err error, op string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgerrcode.IsConnectionException(pgErr.Code):
			return fmt.Errorf("%s: %w", op, store.ErrUnavailable)
		case pgerrcode.IsInsufficientResources(pgErr.Code):
			return fmt.Errorf("%s: %w", op, store.ErrUnavailable)
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		// Bounded pool-acquire or query wait expired.
		return fmt.Errorf("%s: %w", op, store.ErrUnavailable)
	}
	return fmt.Errorf("%s: %w", op, err)
}
