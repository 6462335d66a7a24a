package service

import (
	"time"

	"github.com/okian/aquascore/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum number of tasks waiting for a worker.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock sets the clock handed to the default overview analyzer.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithOverviewAnalyzer replaces the overview analyzer.
func WithOverviewAnalyzer(a OverviewAnalyzer) Option {
	return func(s *Service) {
		if a != nil {
			s.overview = a
		}
	}
}

// WithComparisonAnalyzer replaces the comparison analyzer.
func WithComparisonAnalyzer(a ComparisonAnalyzer) Option {
	return func(s *Service) {
		if a != nil {
			s.comparison = a
		}
	}
}
