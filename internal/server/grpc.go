package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	myGRPC "github.com/MKhiriev/go-pass-vault/internal/handler/grpc"
	"github.com/MKhiriev/go-pass-vault/internal/logger"

	"google.golang.org/grpc"
)

// healthRefreshInterval is how often the gRPC health status is re-probed.
const healthRefreshInterval = 15 * time.Second

type grpcServer struct {
	handler *myGRPC.Handler

	server  *grpc.Server
	address string

	stopProbe chan struct{}

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, cfg config.Server, logger *logger.Logger) *grpcServer {
	server := grpc.NewServer(
		grpc.ChainUnaryInterceptor(unaryLoggingInterceptor(logger)),
	)
	handler.Register(server)

	return &grpcServer{
		handler:   handler,
		server:    server,
		address:   cfg.GRPCAddress,
		stopProbe: make(chan struct{}),
		logger:    logger,
	}
}

func (g *grpcServer) RunServer() error {
	listener, err := net.Listen("tcp", g.address)
	if err != nil {
		return fmt.Errorf("gRPC server Listen on %s: %w", g.address, err)
	}

	go g.probeHealth()

	g.logger.Info().Str("address", g.address).Msg("gRPC server listening")
	if err = g.server.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("gRPC server Serve: %w", err)
	}
	return nil
}

func (g *grpcServer) Shutdown() {
	g.logger.Info().Msg("GRPC server Shutdown")
	close(g.stopProbe)
	g.handler.Shutdown()
	g.server.GracefulStop()
}

func (g *grpcServer) probeHealth() {
	ticker := time.NewTicker(healthRefreshInterval)
	defer ticker.Stop()

	for {
		ctx, cancel := context.WithTimeout(context.Background(), healthRefreshInterval/2)
		g.handler.RefreshHealth(ctx)
		cancel()

		select {
		case <-g.stopProbe:
			return
		case <-ticker.C:
		}
	}
}

// unaryLoggingInterceptor writes one log line per unary call.
func unaryLoggingInterceptor(log *logger.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		log.Debug().
			Str("method", info.FullMethod).
			Dur("duration", time.Since(start)).
			AnErr("error", err).
			Msg("gRPC call")

		return resp, err
	}
}
