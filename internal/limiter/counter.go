package limiter

import (
	"context"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
)

// NewCounter picks the backend from cfg: Redis when RedisAddress is set,
// process memory otherwise.
func NewCounter(ctx context.Context, cfg config.Limiter, log *logger.Logger) (Counter, error) {
	if cfg.RedisAddress == "" {
		log.Info().Msg("attempt counters kept in memory")
		return NewMemoryCounter(0), nil
	}

	counter, err := ConnectRedis(ctx, cfg.RedisAddress)
	if err != nil {
		return nil, err
	}

	log.Info().Str("redis", cfg.RedisAddress).Msg("attempt counters kept in redis")
	return counter, nil
}
