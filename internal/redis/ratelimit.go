package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/picstash/picstash/internal/logger"
	"github.com/redis/go-redis/v9"
)

// FixedWindowLimiter is a Redis-backed fixed-window rate limiter. Counters
// are shared across instances, so the limit holds regardless of which
// replica serves the request. When Redis is unreachable the limiter fails
// open rather than blocking traffic.
type FixedWindowLimiter struct {
	client *redis.Client
	rate   int           // requests per window
	window time.Duration // time window
	logg   *logger.Logger
}

// NewFixedWindowLimiter creates a limiter allowing rate requests per window per key.
func NewFixedWindowLimiter(client *redis.Client, rate int, window time.Duration, logg *logger.Logger) *FixedWindowLimiter {
	return &FixedWindowLimiter{
		client: client,
		rate:   rate,
		window: window,
		logg:   logg,
	}
}

// Allow reports whether the caller identified by key may proceed.
func (l *FixedWindowLimiter) Allow(ctx context.Context, key string) bool {
	window := time.Now().Unix() / int64(l.window.Seconds())
	redisKey := fmt.Sprintf("ratelimit:%s:%d", key, window)

	pipe := l.client.TxPipeline()
	count := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, l.window)

	if _, err := pipe.Exec(ctx); err != nil {
		l.logg.Warn("rate limiter unavailable, failing open", "error", err)
		return true
	}

	return count.Val() <= int64(l.rate)
}
