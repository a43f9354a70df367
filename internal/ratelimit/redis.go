package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/auth-service/pkg/util"
)

const redisKeyPrefix = "rl:"

// RedisLimiter shares window counters through Redis so replicas limit
// together. Counting is INCR-then-EXPIRE; the window is approximate when the
// EXPIRE races a concurrent reset, which is acceptable for admission control.
type RedisLimiter struct {
	client *redis.Client
	cfg    Config
	logger *zap.Logger
}

// NewRedisLimiter builds a Redis-backed fixed-window limiter.
func NewRedisLimiter(client *redis.Client, cfg Config, logger *zap.Logger) *RedisLimiter {
	if cfg.Window <= 0 {
		cfg.Window = 15 * time.Minute
	}
	if cfg.MaxMessages <= 0 {
		cfg.MaxMessages = 1000
	}
	return &RedisLimiter{client: client, cfg: cfg, logger: logger}
}

// Admit increments the window counter for the key. Redis unavailability fails
// open: the limiter is best-effort and must not take the service down with it.
func (l *RedisLimiter) Admit(ctx context.Context, key string, _ time.Time) error {
	redisKey := redisKeyPrefix + key

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		l.logger.Warn("rate limiter unavailable, admitting", zap.String("key", key), zap.Error(err))
		return nil
	}

	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.cfg.Window).Err(); err != nil {
			l.logger.Warn("rate limiter expire failed", zap.String("key", key), zap.Error(err))
		}
	}

	if count > int64(l.cfg.MaxMessages) {
		return util.NewRateLimited()
	}
	return nil
}
