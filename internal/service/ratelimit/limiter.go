package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter decides whether one more request for key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// TokenBucket keeps one in-process token bucket per key.
type TokenBucket struct {
	mu       sync.Mutex
	m        map[string]*rate.Limiter
	capacity int
	refill   rate.Limit // tokens per second
	now      func() time.Time
}

func NewTokenBucket(capacity, refillPerSec float64) *TokenBucket {
	return &TokenBucket{
		m:        make(map[string]*rate.Limiter),
		capacity: max(1, int(capacity)),
		refill:   rate.Limit(refillPerSec),
		now:      time.Now,
	}
}

// Allow returns true if one token can be consumed for key.
func (l *TokenBucket) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	b, ok := l.m[key]
	if !ok {
		b = rate.NewLimiter(l.refill, l.capacity)
		l.m[key] = b
	}
	l.mu.Unlock()
	return b.AllowN(l.now(), 1), nil
}
