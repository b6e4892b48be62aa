package middleware

import (
	"github.com/gin-gonic/gin"
)

// SecurityHeaders adds the standard protective HTTP headers to all responses
// (clickjacking, MIME sniffing, legacy XSS filtering). HSTS is only sent in
// production to avoid breaking plain-HTTP local development.
func SecurityHeaders(production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		if production {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}
