package services

import (
	"context"
	"strings"

	apperrors "github.com/CareVoice/carevoice-backend/errors"
	"github.com/CareVoice/carevoice-backend/internal/sanitize"
	"github.com/CareVoice/carevoice-backend/internal/store"
	"github.com/CareVoice/carevoice-backend/logger"
	"github.com/CareVoice/carevoice-backend/types"
)

// SubmissionService orchestrates validation, sanitization and persistence of
// incoming public feedback. The store never receives raw visitor input.
type SubmissionService struct {
	feedbackStore store.FeedbackStore
	// requireSubmitterName enables the strict intake variant where anonymous
	// submissions are rejected.
	requireSubmitterName bool
}

// NewSubmissionService creates a SubmissionService over the given store.
func NewSubmissionService(feedbackStore store.FeedbackStore, requireSubmitterName bool) *SubmissionService {
	return &SubmissionService{
		feedbackStore:        feedbackStore,
		requireSubmitterName: requireSubmitterName,
	}
}

// Submit validates and persists one feedback submission, returning the
// generated record id. clientIP is the derived network identity of the
// submitter; it is stored verbatim and never taken from the request body.
func (s *SubmissionService) Submit(ctx context.Context, req types.FeedbackCreate, clientIP string) (int64, error) {
	req.Type = strings.TrimSpace(req.Type)
	req.Department = strings.TrimSpace(req.Department)
	req.TargetRole = strings.TrimSpace(req.TargetRole)
	req.Description = strings.TrimSpace(req.Description)
	req.SubmitterName = strings.TrimSpace(req.SubmitterName)

	if req.Type == "" {
		return 0, apperrors.ValidationFailed("Missing required field", "type must not be blank")
	}
	if !types.IsValidFeedbackType(req.Type) {
		return 0, apperrors.ValidationFailed("Invalid feedback type",
			"type must be one of: "+strings.Join(types.KnownFeedbackTypes, ", "))
	}
	if req.Department == "" {
		return 0, apperrors.ValidationFailed("Missing required field", "department must not be blank")
	}
	if req.TargetRole == "" {
		return 0, apperrors.ValidationFailed("Missing required field", "targetRole must not be blank")
	}
	if req.Description == "" {
		return 0, apperrors.ValidationFailed("Missing required field", "description must not be blank")
	}
	if s.requireSubmitterName && req.SubmitterName == "" {
		return 0, apperrors.ValidationFailed("Missing required field", "submitterName must not be blank")
	}

	sanitize.CleanFields(
		&req.TargetRole,
		&req.TargetName,
		&req.Description,
		&req.SubmitterName,
		&req.SubmitterPhone,
	)

	fb := &types.Feedback{
		Type:           req.Type,
		Department:     sanitize.Clean(req.Department),
		TargetRole:     req.TargetRole,
		TargetName:     req.TargetName,
		Description:    req.Description,
		SubmitterName:  req.SubmitterName,
		SubmitterPhone: req.SubmitterPhone,
		IPAddress:      clientIP,
	}

	id, err := s.feedbackStore.CreateFeedback(ctx, fb)
	if err != nil {
		return 0, apperrors.NewDatabaseError(err)
	}

	logger.GetLogger().Infow("Feedback submitted",
		"id", id,
		"type", fb.Type,
		"department", fb.Department,
		"target_role", fb.TargetRole,
		"client_ip", clientIP,
	)

	return id, nil
}
