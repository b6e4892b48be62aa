// Package store defines the persistence contract for feedback records. The
// contract is backend-agnostic: callers never see driver errors or dialect
// differences, and every implementation must satisfy the conformance suite in
// storetest.
package store

import (
	"context"
	"time"

	"github.com/CareVoice/carevoice-backend/types"
)

// FeedbackStore is the uniform persistence contract for feedback records.
//
// Implementations assign ids monotonically at insert time, list records in
// createdAt-descending order, and return ErrNotFound for status updates or
// deletes that reference a nonexistent id.
type FeedbackStore interface {
	// CreateFeedback inserts a record and returns the generated id. Status and
	// CreatedAt are assigned by the store; caller-supplied values are ignored.
	CreateFeedback(ctx context.Context, fb *types.Feedback) (int64, error)

	// ListFeedback returns all records ordered by creation time, newest first.
	// An empty store yields an empty slice, not an error.
	ListFeedback(ctx context.Context) ([]types.Feedback, error)

	// UpdateStatus sets the lifecycle status of the record with the given id.
	// Returns ErrNotFound if no such record exists.
	UpdateStatus(ctx context.Context, id int64, status string) error

	// DeleteFeedback removes the record with the given id. Returns ErrNotFound
	// if no such record exists.
	DeleteFeedback(ctx context.Context, id int64) error

	// CountFeedback returns the total number of stored records.
	CountFeedback(ctx context.Context) (int64, error)

	// CountByType returns the number of records with the given feedback type.
	CountByType(ctx context.Context, feedbackType string) (int64, error)

	// CountCreatedSince returns the number of records created at or after t.
	CountCreatedSince(ctx context.Context, t time.Time) (int64, error)
}
