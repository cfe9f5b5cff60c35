package limiter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "gpv:"

// RedisCounter is a [Counter] shared by every replica that talks to the same
// Redis. Windows are implemented with INCR followed by EXPIRE on the first hit.
type RedisCounter struct {
	redis redis.UniversalClient
}

// NewRedisCounter wraps an existing client.
func NewRedisCounter(client redis.UniversalClient) *RedisCounter {
	return &RedisCounter{redis: client}
}

// ConnectRedis dials addr and checks the connection with PING.
func ConnectRedis(ctx context.Context, addr string) (*RedisCounter, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: %w", ErrCounterUnavailable, err)
	}

	return NewRedisCounter(client), nil
}

func (r *RedisCounter) key(key string) string {
	return redisKeyPrefix + key
}

// Incr implements [Counter].
func (r *RedisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	count, err := r.redis.Incr(ctx, r.key(key)).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrCounterUnavailable, err)
	}
	if count == 1 {
		if err = r.redis.Expire(ctx, r.key(key), window).Err(); err != nil {
			return 0, fmt.Errorf("%w: %w", ErrCounterUnavailable, err)
		}
	}

	return count, nil
}

// Get implements [Counter].
func (r *RedisCounter) Get(ctx context.Context, key string) (int64, error) {
	count, err := r.redis.Get(ctx, r.key(key)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: %w", ErrCounterUnavailable, err)
	}

	return count, nil
}

// Reset implements [Counter].
func (r *RedisCounter) Reset(ctx context.Context, key string) error {
	if err := r.redis.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCounterUnavailable, err)
	}

	return nil
}

// Close implements [Counter].
func (r *RedisCounter) Close() error {
	return r.redis.Close()
}
