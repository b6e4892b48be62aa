package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/CareVoice/carevoice-backend/errors"
	"github.com/CareVoice/carevoice-backend/services"
)

// SubmitRateLimitConfig holds the knobs for the public submission limiter.
type SubmitRateLimitConfig struct {
	// Limit is the maximum number of admitted submissions per identity per window.
	Limit int
	// ExemptLoopback bypasses the limiter for loopback clients. Default off;
	// enabling it changes observable behavior under test.
	ExemptLoopback bool
}

// SubmitRateLimiter bounds submission frequency per client identity. Rejected
// requests receive a structured 429 and never reach the submission service.
func SubmitRateLimiter(limiter services.RateLimiter, cfg SubmitRateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := ClientIP(c)

		if cfg.ExemptLoopback && IsLoopback(ip) {
			c.Next()
			return
		}

		allowed, retryAfter, err := limiter.Allow(c.Request.Context(), ip)
		if err != nil {
			_ = c.Error(apperrors.Wrap(err, apperrors.ServerError, "Rate limit check failed"))
			c.Abort()
			return
		}

		if !allowed {
			seconds := int(retryAfter.Seconds())
			c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(retryAfter).Unix(), 10))
			c.Header("Retry-After", strconv.Itoa(seconds))

			_ = c.Error(apperrors.RateLimitExceeded("Too many submissions. Please try again later.", seconds))
			c.Abort()
			return
		}

		c.Next()
	}
}
