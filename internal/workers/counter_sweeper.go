package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-pass-vault/internal/limiter"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
)

// counterSweeper periodically drops expired attempt counters so that the
// in-memory store does not grow with every client address ever seen.
type counterSweeper struct {
	sweeper  limiter.Sweeper
	interval time.Duration

	logger *logger.Logger
}

func newCounterSweeper(sweeper limiter.Sweeper, interval time.Duration, logger *logger.Logger) *counterSweeper {
	return &counterSweeper{
		sweeper:  sweeper,
		interval: interval,
		logger:   logger,
	}
}

func (s *counterSweeper) Run(ctx context.Context) {
	if s.interval <= 0 {
		s.logger.Warn().Msg("counter sweeper disabled: non-positive interval")
		return
	}

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				s.logger.Debug().Msg("counter sweeper stopped")
				return
			case <-ticker.C:
				if removed := s.sweeper.Sweep(); removed > 0 {
					s.logger.Debug().Int("removed", removed).Msg("expired counters swept")
				}
			}
		}
	}()
}
