package cache

import (
	"context"
	"time"
)

// Counter is the subset of cache operations needed for windowed counting.
type Counter interface {
	// IncrementWindow increments key and sets its expiry when the key is new.
	// It returns the value after the increment.
	IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, error)
}
