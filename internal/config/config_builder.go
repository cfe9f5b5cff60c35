package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"dario.cat/mergo"
)

const (
	defaultTokenIssuer       = "go-pass-vault"
	defaultTokenDuration     = time.Hour
	defaultFetchConcurrency  = 4
	defaultLogLevel          = "info"
	defaultIdentityBaseURL   = "https://identitytoolkit.googleapis.com/v1"
	defaultIdentityTimeout   = 10 * time.Second
	defaultHTTPAddress       = "localhost:8080"
	defaultRequestTimeout    = 30 * time.Second
	defaultMaxLoginAttempts  = 5
	defaultLockout           = 5 * time.Minute
	defaultRequestsPerMinute = 50
	defaultSweepInterval     = time.Minute
)

type configBuilder struct {
	configs []*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 5),
	}
}

func (b *configBuilder) build(validate func(*StructuredConfig) error) (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occurred during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	if validate == nil {
		return config, nil
	}

	if err := validate(config); err != nil {
		return nil, err
	}

	return config, nil
}

func (b *configBuilder) withDefaults() *configBuilder {
	b.configs = append(b.configs, defaults())
	return b
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withFlags() *configBuilder {
	flagsCfg, err := ParseFlags(os.Args[1:])
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, flagsCfg)
	return b
}

func (b *configBuilder) withConfigPath(path string) *configBuilder {
	if path != "" {
		b.configs = append(b.configs, &StructuredConfig{ConfigFilePath: path})
	}
	return b
}

// withFile loads the config file named by the last source that set
// ConfigFilePath. It is a no-op when no path was given or an earlier
// step already failed.
func (b *configBuilder) withFile() *configBuilder {
	if b.err != nil {
		return b
	}

	var path string
	for _, cfg := range b.configs {
		if cfg.ConfigFilePath != "" {
			path = cfg.ConfigFilePath
		}
	}

	if path == "" {
		return b
	}

	fileCfg, err := parseFile(path)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, fileCfg)
	return b
}

func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:      defaultTokenIssuer,
			TokenDuration:    defaultTokenDuration,
			FetchConcurrency: defaultFetchConcurrency,
			LogLevel:         defaultLogLevel,
		},
		Identity: Identity{
			BaseURL:        defaultIdentityBaseURL,
			RequestTimeout: defaultIdentityTimeout,
		},
		Server: Server{
			HTTPAddress:    defaultHTTPAddress,
			RequestTimeout: defaultRequestTimeout,
		},
		Limiter: Limiter{
			MaxLoginAttempts:  defaultMaxLoginAttempts,
			Lockout:           defaultLockout,
			RequestsPerMinute: defaultRequestsPerMinute,
		},
		Workers: Workers{
			SweepInterval: defaultSweepInterval,
		},
	}
}
