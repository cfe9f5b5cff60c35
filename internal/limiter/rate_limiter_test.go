package limiter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_Allow(t *testing.T) {
	ctx := context.Background()
	counter, clock := newTestMemoryCounter(0)
	rl := NewRateLimiter(counter, 3)

	for i := 0; i < 3; i++ {
		require.NoError(t, rl.Allow(ctx, "10.0.0.1"))
	}
	assert.ErrorIs(t, rl.Allow(ctx, "10.0.0.1"), ErrRateLimited)
	assert.NoError(t, rl.Allow(ctx, "10.0.0.2"))

	clock.Advance(time.Minute)
	assert.NoError(t, rl.Allow(ctx, "10.0.0.1"))
}

func TestRateLimiter_ScopedCountsSeparately(t *testing.T) {
	ctx := context.Background()
	counter, _ := newTestMemoryCounter(0)
	global := NewRateLimiter(counter, 10)
	login := global.Scoped("login", 1)

	require.NoError(t, login.Allow(ctx, "10.0.0.1"))
	assert.ErrorIs(t, login.Allow(ctx, "10.0.0.1"), ErrRateLimited)
	assert.NoError(t, global.Allow(ctx, "10.0.0.1"))
	assert.Equal(t, "1", login.Limit())
	assert.Equal(t, "10", global.Limit())
}

func TestRateLimiter_Disabled(t *testing.T) {
	counter, _ := newTestMemoryCounter(0)
	rl := NewRateLimiter(counter, 0)

	for i := 0; i < 100; i++ {
		require.NoError(t, rl.Allow(context.Background(), "c"))
	}
	assert.Zero(t, counter.Len())
}
