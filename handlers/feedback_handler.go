package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/CareVoice/carevoice-backend/errors"
	"github.com/CareVoice/carevoice-backend/middleware"
	"github.com/CareVoice/carevoice-backend/services"
	"github.com/CareVoice/carevoice-backend/types"
)

// FeedbackHandler handles the public feedback submission endpoint.
type FeedbackHandler struct {
	submissions *services.SubmissionService
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(submissions *services.SubmissionService) *FeedbackHandler {
	return &FeedbackHandler{submissions: submissions}
}

// SubmitFeedback accepts one visitor submission. The client identity comes
// from the same derivation the rate limiter uses, never from the body.
func (h *FeedbackHandler) SubmitFeedback(c *gin.Context) {
	var req types.FeedbackCreate
	if !bindJSONOrError(c, &req) {
		return
	}

	id, err := h.submissions.Submit(c.Request.Context(), req, middleware.ClientIP(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, types.SubmitResponse{
		Success: true,
		Message: "Feedback submitted successfully",
		ID:      id,
	})
}

// bindJSONOrError binds the request body, attaching a validation error and
// returning false when the payload cannot be parsed.
func bindJSONOrError(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		_ = c.Error(apperrors.ValidationFailed("Invalid request body", err.Error()))
		return false
	}
	return true
}
