// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

// validate checks that the merged [StructuredConfig] can start the server.
func (cfg *StructuredConfig) validate() error {
	if err := cfg.validateStorage(); err != nil {
		return err
	}

	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: token sign key is required", ErrInvalidAppConfigs)
	}
	if cfg.App.TokenDuration <= 0 {
		return fmt.Errorf("%w: token duration must be positive", ErrInvalidAppConfigs)
	}
	if cfg.App.FetchConcurrency < 1 {
		return fmt.Errorf("%w: fetch concurrency must be at least 1", ErrInvalidAppConfigs)
	}

	if cfg.Identity.BaseURL == "" || cfg.Identity.RequestTimeout <= 0 {
		return ErrInvalidIdentityConfigs
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Limiter.MaxLoginAttempts < 1 || cfg.Limiter.Lockout <= 0 || cfg.Limiter.RequestsPerMinute < 1 {
		return ErrInvalidLimiterConfigs
	}

	if cfg.Workers.SweepInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

// validateStorage accepts the DSN schemes the store package can open.
func (cfg *StructuredConfig) validateStorage() error {
	dsn := cfg.Storage.DB.DSN
	switch {
	case dsn == "":
		return fmt.Errorf("%w: empty DSN", ErrInvalidStorageConfigs)
	case strings.HasPrefix(dsn, "postgres://"),
		strings.HasPrefix(dsn, "postgresql://"),
		strings.HasPrefix(dsn, "sqlite://"),
		strings.HasPrefix(dsn, "file:"),
		strings.HasPrefix(dsn, "memory://"):
		return nil
	default:
		return fmt.Errorf("%w: unsupported DSN scheme", ErrInvalidStorageConfigs)
	}
}
