package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors StructuredConfig for config files. Durations are
// written as strings ("30s", "5m").
type fileConfig struct {
	App struct {
		TokenSignKey     string   `json:"token_sign_key" yaml:"token_sign_key"`
		TokenIssuer      string   `json:"token_issuer" yaml:"token_issuer"`
		TokenDuration    Duration `json:"token_duration" yaml:"token_duration"`
		Version          string   `json:"version" yaml:"version"`
		FetchConcurrency int      `json:"fetch_concurrency" yaml:"fetch_concurrency"`
		LogLevel         string   `json:"log_level" yaml:"log_level"`
	} `json:"app" yaml:"app"`

	Identity struct {
		BaseURL        string   `json:"base_url" yaml:"base_url"`
		APIKey         string   `json:"api_key" yaml:"api_key"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
	} `json:"identity" yaml:"identity"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn" yaml:"dsn"`
		} `json:"db" yaml:"db"`
	} `json:"storage" yaml:"storage"`

	Server struct {
		HTTPAddress    string   `json:"http_address" yaml:"http_address"`
		GRPCAddress    string   `json:"grpc_address" yaml:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
	} `json:"server" yaml:"server"`

	Limiter struct {
		RedisAddress      string   `json:"redis_address" yaml:"redis_address"`
		MaxLoginAttempts  int      `json:"max_login_attempts" yaml:"max_login_attempts"`
		Lockout           Duration `json:"lockout" yaml:"lockout"`
		RequestsPerMinute int      `json:"requests_per_minute" yaml:"requests_per_minute"`
	} `json:"limiter" yaml:"limiter"`

	Workers struct {
		SweepInterval Duration `json:"sweep_interval" yaml:"sweep_interval"`
	} `json:"workers" yaml:"workers"`
}

func parseFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading a config file: %w", err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("error decoding yaml configs: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("error decoding json configs: %w", err)
		}
	}

	return fc.toStructured(), nil
}

func (fc *fileConfig) toStructured() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenSignKey:     fc.App.TokenSignKey,
			TokenIssuer:      fc.App.TokenIssuer,
			TokenDuration:    time.Duration(fc.App.TokenDuration),
			Version:          fc.App.Version,
			FetchConcurrency: fc.App.FetchConcurrency,
			LogLevel:         fc.App.LogLevel,
		},
		Identity: Identity{
			BaseURL:        fc.Identity.BaseURL,
			APIKey:         fc.Identity.APIKey,
			RequestTimeout: time.Duration(fc.Identity.RequestTimeout),
		},
		Storage: Storage{
			DB: DB{DSN: fc.Storage.DB.DSN},
		},
		Server: Server{
			HTTPAddress:    fc.Server.HTTPAddress,
			GRPCAddress:    fc.Server.GRPCAddress,
			RequestTimeout: time.Duration(fc.Server.RequestTimeout),
		},
		Limiter: Limiter{
			RedisAddress:      fc.Limiter.RedisAddress,
			MaxLoginAttempts:  fc.Limiter.MaxLoginAttempts,
			Lockout:           time.Duration(fc.Limiter.Lockout),
			RequestsPerMinute: fc.Limiter.RequestsPerMinute,
		},
		Workers: Workers{
			SweepInterval: time.Duration(fc.Workers.SweepInterval),
		},
	}
}

// Duration is a time.Duration that decodes from strings like "1h" or "30s"
// in both JSON and YAML. Bare JSON numbers are taken as nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		return d.parse(value)
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	return d.parse(s)
}

func (d *Duration) parse(s string) error {
	tmp, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(tmp)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
