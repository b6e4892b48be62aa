package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/CareVoice/carevoice-backend/errors"
	"github.com/CareVoice/carevoice-backend/services"
	"github.com/CareVoice/carevoice-backend/types"
)

// AdminHandler handles the authenticated review endpoints. Routes using it
// are registered behind the AdminAuth middleware.
type AdminHandler struct {
	admin *services.AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(admin *services.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// ListFeedback returns all records, newest first, as a bare array. The admin
// console consumes the rows directly.
func (h *AdminHandler) ListFeedback(c *gin.Context) {
	list, err := h.admin.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// UpdateStatus moves a record to a new lifecycle status.
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req types.FeedbackStatusUpdate
	if !bindJSONOrError(c, &req) {
		return
	}

	if err := h.admin.SetStatus(c.Request.Context(), id, req.Status); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, types.StatusResponse{Success: true, Message: "Status updated"})
}

// DeleteFeedback removes a record.
func (h *AdminHandler) DeleteFeedback(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.admin.Remove(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, types.StatusResponse{Success: true, Message: "Feedback deleted"})
}

// Statistics returns the aggregate counts for the dashboard.
func (h *AdminHandler) Statistics(c *gin.Context) {
	stats, err := h.admin.Statistics(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// pathID parses the :id path parameter, attaching a validation error and
// returning false when it is not a positive integer.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		_ = c.Error(apperrors.ValidationFailed("Invalid id", "id must be a positive integer"))
		return 0, false
	}
	return id, true
}
