package ratelimit

import (
	"context"
	"fmt"
	"time"

	"PriceSampler/pkg/cache"
)

// RedisLimiter is a fixed-window counter shared by every instance pointing
// at the same Redis.
type RedisLimiter struct {
	store  cache.Counter
	limit  int64
	window time.Duration
	now    func() time.Time
}

func NewRedisLimiter(store cache.Counter, limit int64, window time.Duration) *RedisLimiter {
	return &RedisLimiter{store: store, limit: limit, window: window, now: time.Now}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	slot := l.now().UnixNano() / int64(l.window)
	n, err := l.store.IncrementWindow(ctx, cache.GenerateKeyWithParams("ratelimit", key, slot), l.window)
	if err != nil {
		return false, fmt.Errorf("rate limit counter: %w", err)
	}
	return n <= l.limit, nil
}
