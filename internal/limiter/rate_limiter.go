package limiter

import (
	"context"
	"strconv"
	"time"
)

const rateKeyPrefix = "rate:"

// RateLimiter allows at most limit requests per client per minute. A limit
// <= 0 disables it.
type RateLimiter struct {
	counter Counter
	scope   string
	limit   int64

	window time.Duration
}

// NewRateLimiter returns the default limiter for all routes.
func NewRateLimiter(counter Counter, perMinute int) *RateLimiter {
	return &RateLimiter{
		counter: counter,
		scope:   "all",
		limit:   int64(perMinute),
		window:  time.Minute,
	}
}

// Scoped returns a limiter sharing the counter but counting scope separately
// with its own limit.
func (r *RateLimiter) Scoped(scope string, perMinute int) *RateLimiter {
	scoped := *r
	scoped.scope = scope
	scoped.limit = int64(perMinute)

	return &scoped
}

// Allow counts one request from client and returns [ErrRateLimited] once the
// window budget is spent.
func (r *RateLimiter) Allow(ctx context.Context, client string) error {
	if r.limit <= 0 {
		return nil
	}

	count, err := r.counter.Incr(ctx, r.key(client), r.window)
	if err != nil {
		return err
	}
	if count > r.limit {
		return ErrRateLimited
	}

	return nil
}

// Limit is the per-window budget, used for the X-RateLimit-Limit header.
func (r *RateLimiter) Limit() string {
	return strconv.FormatInt(r.limit, 10)
}

func (r *RateLimiter) key(client string) string {
	return rateKeyPrefix + r.scope + ":" + client
}
