package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/CareVoice/carevoice-backend/errors"
	"github.com/CareVoice/carevoice-backend/services"
)

// Context key under which the verified role claim is stored.
const RoleKey = "admin_role"

// AdminAuth guards administrator routes. It extracts the bearer token,
// verifies it through the AuthService, and stores the role claim in the
// request context. Requests with a missing, malformed or expired token are
// rejected before any handler or store access.
func AdminAuth(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			_ = c.Error(apperrors.AuthenticationFailed("Authentication required"))
			c.Abort()
			return
		}

		role, err := auth.Verify(token)
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		c.Set(RoleKey, role)
		c.Next()
	}
}
