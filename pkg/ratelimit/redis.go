package ratelimit

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter counts requests per key in a fixed window shared across
// service instances.
type RedisLimiter struct {
	client redis.UniversalClient
	cfg    Config
	prefix string
}

// NewRedisLimiter creates a limiter on the given client. The prefix keeps
// limiter keys apart from other users of the same database.
func NewRedisLimiter(client redis.UniversalClient, prefix string, cfg Config) *RedisLimiter {
	if prefix == "" {
		prefix = "ratelimit"
	}
	if cfg.Limit <= 0 {
		cfg.Limit = 20
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	return &RedisLimiter{client: client, cfg: cfg, prefix: prefix}
}

// Allow implements Limiter.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (Result, error) {
	fullKey := l.prefix + ":" + key

	pipe := l.client.TxPipeline()
	count := pipe.Incr(ctx, fullKey)
	ttl := pipe.PTTL(ctx, fullKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return Result{}, errors.Join(ErrLimiterUnavailable, err)
	}

	// A fresh key has no expiry yet; the first increment starts the window.
	if ttl.Val() < 0 {
		if err := l.client.PExpire(ctx, fullKey, l.cfg.Window).Err(); err != nil {
			return Result{}, errors.Join(ErrLimiterUnavailable, err)
		}
		ttl.SetVal(l.cfg.Window)
	}

	n := int(count.Val())
	if n > l.cfg.Limit {
		return Result{Allowed: false, RetryAfter: ttl.Val()}, nil
	}
	return Result{Allowed: true, Remaining: l.cfg.Limit - n}, nil
}
