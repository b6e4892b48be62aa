package services

import (
	"context"
	"time"

	"github.com/CareVoice/carevoice-backend/internal/store"
	"github.com/CareVoice/carevoice-backend/logger"
	"github.com/CareVoice/carevoice-backend/types"
)

const healthCheckTimeout = 5 * time.Second

// HealthService reports persistence connectivity for the unauthenticated
// probe endpoint. It never surfaces driver errors or credentials.
type HealthService struct {
	feedbackStore store.FeedbackStore
	backendName   string
}

// NewHealthService creates a HealthService. backendName is the label exposed
// in probe responses (e.g. "PostgreSQL").
func NewHealthService(feedbackStore store.FeedbackStore, backendName string) *HealthService {
	return &HealthService{feedbackStore: feedbackStore, backendName: backendName}
}

// CheckDB probes the store with a bounded count query.
func (s *HealthService) CheckDB(ctx context.Context) *types.DBHealth {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	count, err := s.feedbackStore.CountFeedback(ctx)
	if err != nil {
		logger.GetLogger().Errorw("Database health check failed", "error", err)
		return &types.DBHealth{
			Success:  false,
			Message:  "Database connection failed",
			Database: s.backendName,
		}
	}

	return &types.DBHealth{
		Success:  true,
		Message:  "Database connection OK",
		Count:    count,
		Database: s.backendName,
	}
}
