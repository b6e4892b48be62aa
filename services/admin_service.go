package services

import (
	"context"
	"errors"
	"strings"
	"time"

	apperrors "github.com/CareVoice/carevoice-backend/errors"
	"github.com/CareVoice/carevoice-backend/internal/store"
	"github.com/CareVoice/carevoice-backend/logger"
	"github.com/CareVoice/carevoice-backend/types"
)

// statsZone is the fixed civil time zone used for the "today" statistic so it
// stays stable regardless of where the service is deployed. The institution
// operates in China Standard Time.
var statsZone = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Shanghai")
	if err != nil {
		return time.FixedZone("CST", 8*60*60)
	}
	return loc
}()

// AdminService exposes the administrator review operations. All of its
// methods sit behind token verification at the HTTP boundary; the service
// itself performs no authentication.
type AdminService struct {
	feedbackStore store.FeedbackStore
	now           func() time.Time
}

// NewAdminService creates an AdminService over the given store.
func NewAdminService(feedbackStore store.FeedbackStore) *AdminService {
	return &AdminService{feedbackStore: feedbackStore, now: time.Now}
}

// NewAdminServiceWithClock is like NewAdminService with an injected clock.
func NewAdminServiceWithClock(feedbackStore store.FeedbackStore, now func() time.Time) *AdminService {
	return &AdminService{feedbackStore: feedbackStore, now: now}
}

// List returns all feedback records, newest first.
func (s *AdminService) List(ctx context.Context) ([]types.Feedback, error) {
	list, err := s.feedbackStore.ListFeedback(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}
	return list, nil
}

// SetStatus moves a record to a new lifecycle status.
func (s *AdminService) SetStatus(ctx context.Context, id int64, status string) error {
	status = strings.TrimSpace(status)
	if !types.IsValidFeedbackStatus(status) {
		return apperrors.ValidationFailed("Invalid status",
			"status must be one of: "+strings.Join(types.KnownFeedbackStatuses, ", "))
	}

	if err := s.feedbackStore.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.NotFound("Feedback", id)
		}
		return apperrors.NewDatabaseError(err)
	}

	logger.GetLogger().Infow("Feedback status updated", "id", id, "status", status)
	return nil
}

// Remove deletes a record.
func (s *AdminService) Remove(ctx context.Context, id int64) error {
	if err := s.feedbackStore.DeleteFeedback(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.NotFound("Feedback", id)
		}
		return apperrors.NewDatabaseError(err)
	}

	logger.GetLogger().Infow("Feedback deleted", "id", id)
	return nil
}

// Statistics aggregates counts for the admin dashboard. "Today" covers
// midnight-to-now in the institution's time zone, not the server's.
func (s *AdminService) Statistics(ctx context.Context) (*types.FeedbackStats, error) {
	total, err := s.feedbackStore.CountFeedback(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	byType := make(map[string]int64, len(types.KnownFeedbackTypes))
	for _, typ := range types.KnownFeedbackTypes {
		n, err := s.feedbackStore.CountByType(ctx, typ)
		if err != nil {
			return nil, apperrors.NewDatabaseError(err)
		}
		byType[typ] = n
	}

	localNow := s.now().In(statsZone)
	midnight := time.Date(localNow.Year(), localNow.Month(), localNow.Day(), 0, 0, 0, 0, statsZone)
	today, err := s.feedbackStore.CountCreatedSince(ctx, midnight)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	return &types.FeedbackStats{
		Total:  total,
		ByType: byType,
		Today:  today,
	}, nil
}
