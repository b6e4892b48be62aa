package services

import (
	"context"
	"errors"
	"time"

	"github.com/CareVoice/carevoice-backend/internal/store"
	"github.com/CareVoice/carevoice-backend/logger"
	"github.com/CareVoice/carevoice-backend/types"
)

func init() {
	logger.IsTest = true
}

var errBackendDown = errors.New("pgx: connection refused")

// failingStore simulates an unavailable persistence backend.
type failingStore struct{}

var _ store.FeedbackStore = failingStore{}

func (failingStore) CreateFeedback(context.Context, *types.Feedback) (int64, error) {
	return 0, errBackendDown
}

func (failingStore) ListFeedback(context.Context) ([]types.Feedback, error) {
	return nil, errBackendDown
}

func (failingStore) UpdateStatus(context.Context, int64, string) error {
	return errBackendDown
}

func (failingStore) DeleteFeedback(context.Context, int64) error {
	return errBackendDown
}

func (failingStore) CountFeedback(context.Context) (int64, error) {
	return 0, errBackendDown
}

func (failingStore) CountByType(context.Context, string) (int64, error) {
	return 0, errBackendDown
}

func (failingStore) CountCreatedSince(context.Context, time.Time) (int64, error) {
	return 0, errBackendDown
}
