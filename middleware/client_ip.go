package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// ClientIP extracts the real client IP from the request. It checks
// X-Forwarded-For first (taking the first hop), then X-Real-IP, then falls
// back to the transport peer address.
//
// Both the rate-limit key and the stored ip_address field use this single
// derivation, so abuse tracking stays consistent with what is persisted.
func ClientIP(c *gin.Context) string {
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		ips := strings.Split(forwarded, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	if realIP := c.GetHeader("X-Real-IP"); realIP != "" {
		return realIP
	}

	return c.ClientIP()
}

// IsLoopback reports whether ip is a loopback address. Used by the optional
// rate-limit exemption.
func IsLoopback(ip string) bool {
	return ip == "127.0.0.1" || ip == "::1" || ip == "localhost"
}
