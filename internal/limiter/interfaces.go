package limiter

import (
	"context"
	"time"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/limiter_mock.go -package=mock

// Counter is a set of named fixed-window counters. Implementations are safe
// for concurrent use.
type Counter interface {
	// Incr adds one to key and returns the new value. The increment that
	// creates the key starts a window of length window; the key expires
	// when it ends.
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
	// Get returns the current value of key, 0 when absent or expired.
	Get(ctx context.Context, key string) (int64, error)
	// Reset drops key.
	Reset(ctx context.Context, key string) error
	Close() error
}

// Sweeper is implemented by counters that need expired keys collected
// explicitly.
type Sweeper interface {
	// Sweep removes expired keys and returns how many were removed.
	Sweep() int
}
