package server

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/handler"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
)

// Servers runs the configured transports side by side.
type Servers struct {
	transports map[string]Server
	logger     *logger.Logger
}

// NewServer creates a transport for every configured address that has a
// handler. At least one transport is required.
func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (*Servers, error) {
	logger.Info().Msg("creating new server...")
	servers := &Servers{
		transports: make(map[string]Server, 2),
		logger:     logger,
	}

	if cfg.HTTPAddress != "" && handlers.HTTP != nil {
		servers.transports["http"] = newHTTPServer(handlers.HTTP.Init(), cfg, logger)
	}
	if cfg.GRPCAddress != "" && handlers.GRPC != nil {
		servers.transports["grpc"] = newGRPCServer(handlers.GRPC, cfg, logger)
	}

	if len(servers.transports) == 0 {
		return nil, errNoServersAreCreated
	}

	return servers, nil
}

// Run serves until ctx is cancelled or a transport fails, then shuts every
// transport down. It returns the first transport failure.
func (s *Servers) Run(ctx context.Context) error {
	if len(s.transports) == 0 {
		return errNoServersAreCreated
	}

	g, gctx := errgroup.WithContext(ctx)

	for name, transport := range s.transports {
		s.logger.Info().Str("transport", name).Msg("launching server")
		g.Go(transport.RunServer)
	}

	g.Go(func() error {
		<-gctx.Done()
		s.shutdown()
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	s.logger.Info().Msg("server shutdown gracefully")
	return nil
}

func (s *Servers) shutdown() {
	for name, transport := range s.transports {
		s.logger.Info().Str("transport", name).Msg("shutting down")
		transport.Shutdown()
	}
}
