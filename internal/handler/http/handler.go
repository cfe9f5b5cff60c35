package http

import (
	"time"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/limiter"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/MKhiriev/go-pass-vault/internal/utils"
)

// Per-route budgets on top of the global one, requests per minute per client
// address.
const (
	signupRequestsPerMinute   = 3
	loginRequestsPerMinute    = 5
	entryRequestsPerMinute    = 10
	generateRequestsPerMinute = 20
)

type Handler struct {
	services *service.Services

	// limits is the global per-client limiter. Nil disables rate limiting.
	limits *limiter.RateLimiter

	requestTimeout time.Duration
	traceIDs       *utils.UUIDGenerator

	logger *logger.Logger
}

func NewHandler(services *service.Services, limits *limiter.RateLimiter, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		limits:         limits,
		requestTimeout: cfg.RequestTimeout,
		traceIDs:       utils.NewUUIDGenerator(),
		logger:         logger,
	}
}
