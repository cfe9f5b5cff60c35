package config

import "errors"

// Validation errors returned when the merged configuration is incomplete or
// invalid.
var (
	ErrInvalidStorageConfigs  = errors.New("invalid storage configuration")
	ErrInvalidAppConfigs      = errors.New("invalid app configuration")
	ErrInvalidIdentityConfigs = errors.New("invalid identity provider configuration")
	ErrInvalidServerConfigs   = errors.New("invalid server configuration")
	// ErrInvalidLimiterConfigs indicates non-positive attempt limits or lockout.
	ErrInvalidLimiterConfigs = errors.New("invalid limiter configuration")
	ErrInvalidWorkerConfigs  = errors.New("invalid worker configuration")
)
