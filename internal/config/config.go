// Package config defines service configuration and its layered loading.
package config

import (
	"context"
	"fmt"
	"time"
)

// Defaults. The listen port and worker count follow the historical gRPC deployment.
const (
	defaultAddr             = ":50051"
	defaultWorkerCount      = 10
	defaultQueueSize        = 1000
	defaultRequestTimeoutMS = 5000
	defaultMaxBodyBytes     = 1 << 20
	defaultMaxResults       = 10_000
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address.
	Addr string `koanf:"addr"`

	// WorkerCount sets the number of analysis workers.
	WorkerCount int `koanf:"worker_count"`

	// QueueSize bounds the number of analysis tasks waiting for a worker.
	QueueSize int `koanf:"queue_size"`

	// RequestTimeoutMS caps how long a request may wait for its analysis.
	RequestTimeoutMS int `koanf:"request_timeout_ms"`

	// MaxBodyBytes caps request body size.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`

	// MaxResults caps the number of results in one overview request.
	MaxResults int `koanf:"max_results"`
}

// New returns a Config populated with defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Addr:             defaultAddr,
		WorkerCount:      defaultWorkerCount,
		QueueSize:        defaultQueueSize,
		RequestTimeoutMS: defaultRequestTimeoutMS,
		MaxBodyBytes:     defaultMaxBodyBytes,
		MaxResults:       defaultMaxResults,
	}
}

// RequestTimeout returns RequestTimeoutMS as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMS) * time.Millisecond
}

// Validate reports the first invalid field, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.WorkerCount <= 0:
		return fmt.Errorf("%w: worker_count must be positive, got %d", ErrInvalidConfig, c.WorkerCount)
	case c.QueueSize <= 0:
		return fmt.Errorf("%w: queue_size must be positive, got %d", ErrInvalidConfig, c.QueueSize)
	case c.RequestTimeoutMS <= 0:
		return fmt.Errorf("%w: request_timeout_ms must be positive, got %d", ErrInvalidConfig, c.RequestTimeoutMS)
	case c.MaxBodyBytes <= 0:
		return fmt.Errorf("%w: max_body_bytes must be positive, got %d", ErrInvalidConfig, c.MaxBodyBytes)
	case c.MaxResults <= 0:
		return fmt.Errorf("%w: max_results must be positive, got %d", ErrInvalidConfig, c.MaxResults)
	case c.LogFormat != "text" && c.LogFormat != "json":
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}
