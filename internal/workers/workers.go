package workers

import (
	"context"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/limiter"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
)

type Workers struct {
	workers []Worker
}

// NewWorkers builds the background workers of the server. counter is
// swept only when it keeps its keys in process memory; Redis expires keys
// on its own.
func NewWorkers(cfg config.Workers, counter limiter.Counter, logger *logger.Logger) *Workers {
	w := &Workers{}

	if sweeper, ok := counter.(limiter.Sweeper); ok {
		w.workers = append(w.workers, newCounterSweeper(sweeper, cfg.SweepInterval, logger))
	}

	logger.Info().Int("count", len(w.workers)).Msg("workers created")
	return w
}

func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Run(ctx)
	}
}
