package services

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisRateLimiter_Allow(t *testing.T) {
	client, mock := redismock.NewClientMock()
	limiter := NewRedisRateLimiter(client, 10, 10*time.Minute)
	key := "rate_limit:submit:203.0.113.9"

	t.Run("under the limit", func(t *testing.T) {
		mock.ExpectTxPipeline()
		mock.ExpectIncr(key).SetVal(3)
		mock.ExpectExpireNX(key, 10*time.Minute).SetVal(false)
		mock.ExpectTxPipelineExec()

		allowed, retryAfter, err := limiter.Allow(context.Background(), "203.0.113.9")
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Zero(t, retryAfter)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("over the limit returns TTL as retry hint", func(t *testing.T) {
		mock.ExpectTxPipeline()
		mock.ExpectIncr(key).SetVal(11)
		mock.ExpectExpireNX(key, 10*time.Minute).SetVal(false)
		mock.ExpectTxPipelineExec()
		mock.ExpectTTL(key).SetVal(4 * time.Minute)

		allowed, retryAfter, err := limiter.Allow(context.Background(), "203.0.113.9")
		require.NoError(t, err)
		assert.False(t, allowed)
		assert.Equal(t, 4*time.Minute, retryAfter)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("redis failure surfaces as error", func(t *testing.T) {
		mock.ExpectTxPipeline()
		mock.ExpectIncr(key).SetErr(assert.AnError)

		_, _, err := limiter.Allow(context.Background(), "203.0.113.9")
		assert.Error(t, err)
	})
}
