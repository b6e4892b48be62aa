package services

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter decides whether a client identity may submit again. Allow
// returns the wait until the next admission when the limit is exhausted.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
}

// RedisRateLimiter bounds submissions per identity using Redis, so the limit
// holds across multiple processes. Counting uses INCR with a rolling EXPIRE.
type RedisRateLimiter struct {
	redis     *redis.Client
	keyPrefix string
	limit     int
	window    time.Duration
}

var _ RateLimiter = (*RedisRateLimiter)(nil)

// NewRedisRateLimiter creates a limiter admitting at most limit submissions
// per identity per window.
func NewRedisRateLimiter(client *redis.Client, limit int, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{
		redis:     client,
		keyPrefix: "rate_limit:submit:",
		limit:     limit,
		window:    window,
	}
}

func (s *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	rKey := s.keyPrefix + key

	pipe := s.redis.TxPipeline()
	incr := pipe.Incr(ctx, rKey)
	pipe.ExpireNX(ctx, rKey, s.window)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, err
	}

	if incr.Val() > int64(s.limit) {
		ttl, err := s.redis.TTL(ctx, rKey).Result()
		if err != nil {
			return false, 0, err
		}
		if ttl < 0 {
			ttl = s.window
		}
		return false, ttl, nil
	}

	return true, 0, nil
}
