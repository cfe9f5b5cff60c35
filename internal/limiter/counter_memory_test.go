package limiter

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestMemoryCounter(maxKeys int) (*MemoryCounter, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	m := NewMemoryCounter(maxKeys)
	m.now = clock.Now
	return m, clock
}

func TestMemoryCounter_IncrWithinWindow(t *testing.T) {
	ctx := context.Background()
	m, clock := newTestMemoryCounter(0)

	for want := int64(1); want <= 3; want++ {
		got, err := m.Incr(ctx, "k", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	clock.Advance(59 * time.Second)
	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, int64(3), got)
}

func TestMemoryCounter_WindowExpires(t *testing.T) {
	ctx := context.Background()
	m, clock := newTestMemoryCounter(0)

	_, _ = m.Incr(ctx, "k", time.Minute)
	_, _ = m.Incr(ctx, "k", time.Minute)
	clock.Advance(time.Minute)

	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Zero(t, got)

	got, err = m.Incr(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got, "a new window starts after expiry")
}

func TestMemoryCounter_Reset(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestMemoryCounter(0)

	_, _ = m.Incr(ctx, "k", time.Minute)
	require.NoError(t, m.Reset(ctx, "k"))

	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Zero(t, got)
	assert.Zero(t, m.Len())
}

func TestMemoryCounter_Sweep(t *testing.T) {
	ctx := context.Background()
	m, clock := newTestMemoryCounter(0)

	_, _ = m.Incr(ctx, "short", time.Second)
	_, _ = m.Incr(ctx, "long", time.Hour)
	clock.Advance(time.Minute)

	assert.Equal(t, 1, m.Sweep())
	assert.Equal(t, 1, m.Len())
	assert.Zero(t, m.Sweep())
}

func TestMemoryCounter_Bounded(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestMemoryCounter(3)

	_, _ = m.Incr(ctx, "a", time.Minute)
	_, _ = m.Incr(ctx, "b", 2*time.Minute)
	_, _ = m.Incr(ctx, "c", 3*time.Minute)
	_, _ = m.Incr(ctx, "d", 4*time.Minute)

	assert.Equal(t, 3, m.Len())
	got, _ := m.Get(ctx, "a")
	assert.Zero(t, got, "the key closest to expiry is evicted")
	got, _ = m.Get(ctx, "d")
	assert.Equal(t, int64(1), got)
}

func TestMemoryCounter_Concurrent(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryCounter(0)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = m.Incr(ctx, "shared", time.Minute)
			_, _ = m.Incr(ctx, fmt.Sprintf("own-%d", i), time.Minute)
		}(i)
	}
	wg.Wait()

	got, err := m.Get(ctx, "shared")
	require.NoError(t, err)
	assert.Equal(t, int64(50), got)
	assert.Equal(t, 51, m.Len())
}
