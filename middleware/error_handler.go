package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/CareVoice/carevoice-backend/errors"
	"github.com/CareVoice/carevoice-backend/logger"
	"github.com/CareVoice/carevoice-backend/types"
)

// ErrorHandler translates errors attached to the gin context into the
// `{success:false, message}` envelope every client-visible failure uses.
// Full detail is logged server-side; clients only see sanitized messages.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		if appError, ok := err.(*apperrors.AppError); ok {
			statusCode := appError.GetHTTPStatus()
			logger.LogHTTPError(c, err, statusCode, fmt.Sprintf("%s error", appError.Type))

			message := appError.Message
			// Validation detail is user-correctable and safe to echo.
			if appError.Type == apperrors.ValidationError && appError.Detail != "" {
				message = fmt.Sprintf("%s: %s", appError.Message, appError.Detail)
			}

			c.JSON(statusCode, types.ErrorResponse{Success: false, Message: message})
			return
		}

		// Gin binding errors: the request body could not be parsed.
		if c.Errors.Last().Type == gin.ErrorTypeBind {
			logger.LogHTTPError(c, err, http.StatusBadRequest, "Request binding error")
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Success: false,
				Message: "Invalid request body",
			})
			return
		}

		logger.LogHTTPError(c, err, http.StatusInternalServerError, "Unexpected server error")
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Success: false,
			Message: "Internal server error",
		})
	}
}
