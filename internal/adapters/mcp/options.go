package mcp

import "github.com/okian/aquascore/pkg/logger"

// Option configures the tool handlers.
type Option func(*toolHandler)

// WithMaxResults caps the number of results an overview call may carry.
func WithMaxResults(n int) Option {
	return func(h *toolHandler) {
		h.maxResults = n
	}
}

// WithLogger sets the handler logger.
func WithLogger(l logger.Logger) Option {
	return func(h *toolHandler) {
		if l != nil {
			h.log = l
		}
	}
}
