package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/CareVoice/carevoice-backend/services"
)

func buildLimitedRouter(limiter services.RateLimiter, cfg SubmitRateLimitConfig) *gin.Engine {
	r := gin.New()
	r.Use(ErrorHandler())
	r.POST("/api/submit", SubmitRateLimiter(limiter, cfg), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return r
}

func submitFrom(r *gin.Engine, forwardedFor string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/submit", nil)
	if forwardedFor != "" {
		req.Header.Set("X-Forwarded-For", forwardedFor)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestSubmitRateLimiter(t *testing.T) {
	t.Run("rejects the N+1th submission with 429", func(t *testing.T) {
		limiter := services.NewMemoryRateLimiter(3, 10*time.Minute)
		r := buildLimitedRouter(limiter, SubmitRateLimitConfig{Limit: 3})

		for i := 0; i < 3; i++ {
			w := submitFrom(r, "203.0.113.9")
			assert.Equal(t, http.StatusOK, w.Code)
		}

		w := submitFrom(r, "203.0.113.9")
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Contains(t, w.Body.String(), `"success":false`)
		assert.NotEmpty(t, w.Header().Get("Retry-After"))
		assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("identities are limited independently", func(t *testing.T) {
		limiter := services.NewMemoryRateLimiter(1, 10*time.Minute)
		r := buildLimitedRouter(limiter, SubmitRateLimitConfig{Limit: 1})

		assert.Equal(t, http.StatusOK, submitFrom(r, "203.0.113.9").Code)
		assert.Equal(t, http.StatusTooManyRequests, submitFrom(r, "203.0.113.9").Code)
		assert.Equal(t, http.StatusOK, submitFrom(r, "198.51.100.4").Code)
	})

	t.Run("window elapse readmits", func(t *testing.T) {
		current := time.Now()
		limiter := services.NewMemoryRateLimiterWithClock(1, 10*time.Minute, func() time.Time {
			return current
		})
		r := buildLimitedRouter(limiter, SubmitRateLimitConfig{Limit: 1})

		assert.Equal(t, http.StatusOK, submitFrom(r, "203.0.113.9").Code)
		assert.Equal(t, http.StatusTooManyRequests, submitFrom(r, "203.0.113.9").Code)

		current = current.Add(10*time.Minute + time.Second)
		assert.Equal(t, http.StatusOK, submitFrom(r, "203.0.113.9").Code)
	})

	t.Run("loopback exemption only when configured", func(t *testing.T) {
		limiter := services.NewMemoryRateLimiter(1, 10*time.Minute)
		exempt := buildLimitedRouter(limiter, SubmitRateLimitConfig{Limit: 1, ExemptLoopback: true})

		for i := 0; i < 5; i++ {
			assert.Equal(t, http.StatusOK, submitFrom(exempt, "127.0.0.1").Code)
		}

		strict := buildLimitedRouter(services.NewMemoryRateLimiter(1, 10*time.Minute), SubmitRateLimitConfig{Limit: 1})
		assert.Equal(t, http.StatusOK, submitFrom(strict, "127.0.0.1").Code)
		assert.Equal(t, http.StatusTooManyRequests, submitFrom(strict, "127.0.0.1").Code)
	})
}

func TestClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("prefers first forwarded hop", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Request.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
		assert.Equal(t, "203.0.113.9", ClientIP(c))
	})

	t.Run("falls back to X-Real-IP", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Request.Header.Set("X-Real-IP", "198.51.100.4")
		assert.Equal(t, "198.51.100.4", ClientIP(c))
	})

	t.Run("falls back to peer address", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Request.RemoteAddr = "192.0.2.7:1234"
		assert.Equal(t, "192.0.2.7", ClientIP(c))
	})
}
