package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const rateLimitKey = "ratelimit:global"

// RateLimiter provides the process-wide request counter backed by Redis.
// One fixed window is shared across all requests; there is no per-identity
// partitioning.
type RateLimiter struct {
	client *redis.Client
	max    int64
	window time.Duration
}

// NewRateLimiter creates a RateLimiter allowing max requests per window.
func NewRateLimiter(client *redis.Client, max int, window time.Duration) *RateLimiter {
	return &RateLimiter{client: client, max: int64(max), window: window}
}

// Allow increments the shared counter and reports whether the request falls
// within the limit. The window's expiry is set when its first request lands.
func (l *RateLimiter) Allow(ctx context.Context) (bool, error) {
	n, err := l.client.Incr(ctx, rateLimitKey).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, rateLimitKey, l.window).Err(); err != nil {
			return false, fmt.Errorf("rate limit expire: %w", err)
		}
	}
	return n <= l.max, nil
}
