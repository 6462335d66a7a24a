package api

import (
	"time"

	"github.com/okian/aquascore/pkg/logger"
)

type serverConfig struct {
	limits limits
	logger logger.Logger
}

// Option configures NewServer.
type Option func(*serverConfig)

// WithMaxBodyBytes caps request body size.
func WithMaxBodyBytes(n int64) Option {
	return func(c *serverConfig) {
		if n > 0 {
			c.limits.maxBodyBytes = n
		}
	}
}

// WithMaxResults caps the number of results in one overview request.
func WithMaxResults(n int) Option {
	return func(c *serverConfig) {
		if n > 0 {
			c.limits.maxResults = n
		}
	}
}

// WithRequestTimeout caps how long a request waits for its analysis.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *serverConfig) {
		if d > 0 {
			c.limits.timeout = d
		}
	}
}

// WithLogger sets the logger used for server-side failures.
func WithLogger(l logger.Logger) Option {
	return func(c *serverConfig) {
		if l != nil {
			c.logger = l
		}
	}
}
