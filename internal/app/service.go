// Package service dispatches analysis requests onto the worker pool and
// implements the dependencies required by the transports.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	eventqueue "github.com/okian/aquascore/internal/adapters/mq/queue"
	workerpool "github.com/okian/aquascore/internal/adapters/mq/worker"
	"github.com/okian/aquascore/internal/domain/comparison"
	"github.com/okian/aquascore/internal/domain/model"
	"github.com/okian/aquascore/internal/domain/overview"
	"github.com/okian/aquascore/pkg/logger"
	"github.com/okian/aquascore/pkg/metrics"
)

const (
	defaultWorkerCount = 10
	defaultQueueSize   = 1000
	stopTimeout        = 10 * time.Second
)

// OverviewAnalyzer computes per-event performance summaries.
type OverviewAnalyzer interface {
	Analyze(results []model.TimedResult) ([]model.EventAnalysis, error)
}

// ComparisonAnalyzer compares a target result with the field.
type ComparisonAnalyzer interface {
	Analyze(target model.ComparisonRecord, competitors []model.ComparisonRecord, marks model.ReferenceMarks) []model.ResultComparison
}

// Service runs analyses on a bounded worker pool. It keeps no analysis state
// between requests.
type Service struct {
	mu sync.RWMutex

	overview   OverviewAnalyzer
	comparison ComparisonAnalyzer
	queue      *eventqueue.InMemoryQueue
	pool       *workerpool.Pool

	workerCount int
	queueSize   int
	now         func() time.Time

	started bool
	served  atomic.Int64
	failed  atomic.Int64

	logger logger.Logger
}

// Stats is a point-in-time view of the service for monitoring.
type Stats struct {
	Started        bool  `json:"started"`
	WorkerCount    int   `json:"workerCount"`
	BusyWorkers    int   `json:"busyWorkers"`
	QueueSize      int   `json:"queueSize"`
	QueueLength    int   `json:"queueLength"`
	TasksProcessed int64 `json:"tasksProcessed"`
	AnalysesServed int64 `json:"analysesServed"`
	AnalysesFailed int64 `json:"analysesFailed"`
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: defaultWorkerCount,
		queueSize:   defaultQueueSize,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.overview == nil {
		s.overview = overview.NewAnalyzer(overview.WithClock(s.now))
	}
	if s.comparison == nil {
		s.comparison = comparison.NewAnalyzer()
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	return s
}

// Start creates the queue and starts the workers. Workers live until ctx is
// cancelled or Stop is called.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	s.queue = eventqueue.NewInMemoryQueue(eventqueue.WithCapacity(s.queueSize))
	s.pool = workerpool.NewPool(s.workerCount, s.queue)
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "analysis service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
	)
	return nil
}

// Stop closes the queue and waits for in-flight tasks to finish.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()

	s.logger.Info(ctx, "stopping analysis service...")
	if err := s.pool.Shutdown(ctx); err != nil {
		s.logger.Warn(ctx, "worker pool did not drain", logger.Error(err))
	}
	s.started = false
	s.logger.Info(ctx, "analysis service stopped")
}

// AnalyzeOverview computes the performance overview for one athlete.
func (s *Service) AnalyzeOverview(ctx context.Context, athlete string, results []model.TimedResult) ([]model.EventAnalysis, error) {
	s.logger.Info(ctx, "received performance overview request",
		logger.String("athlete", athlete),
		logger.Int("results", len(results)),
	)
	metrics.RecordInputRecords(string(model.TaskOverview), len(results))

	var out []model.EventAnalysis
	err := s.submit(ctx, model.TaskOverview, athlete, func(context.Context) error {
		var err error
		out, err = s.overview.Analyze(results)
		return err
	})
	if err != nil {
		s.logger.Error(ctx, "performance overview failed",
			logger.String("athlete", athlete),
			logger.Error(err),
		)
		return nil, err
	}

	metrics.RecordEventsAnalyzed(len(out))
	s.logger.Info(ctx, "performance overview completed",
		logger.String("athlete", athlete),
		logger.Int("events", len(out)),
	)
	return out, nil
}

// AnalyzeComparison compares target with competitors and the reference marks.
func (s *Service) AnalyzeComparison(ctx context.Context, target model.ComparisonRecord, competitors []model.ComparisonRecord, marks model.ReferenceMarks) ([]model.ResultComparison, error) {
	s.logger.Info(ctx, "received result comparison request",
		logger.String("athlete", target.AthleteName),
		logger.Int("competitors", len(competitors)),
	)
	metrics.RecordInputRecords(string(model.TaskComparison), len(competitors)+1)

	var out []model.ResultComparison
	err := s.submit(ctx, model.TaskComparison, target.AthleteName, func(context.Context) error {
		out = s.comparison.Analyze(target, competitors, marks)
		return nil
	})
	if err != nil {
		s.logger.Error(ctx, "result comparison failed",
			logger.String("athlete", target.AthleteName),
			logger.Error(err),
		)
		return nil, err
	}

	metrics.RecordComparisonsProduced(len(out))
	s.logger.Info(ctx, "result comparison completed",
		logger.String("athlete", target.AthleteName),
		logger.Int("comparisons", len(out)),
	)
	return out, nil
}

// submit enqueues run and waits for a worker to finish it or for ctx to end.
func (s *Service) submit(ctx context.Context, kind model.TaskKind, athlete string, run func(context.Context) error) error {
	s.mu.RLock()
	started, q := s.started, s.queue
	s.mu.RUnlock()
	if !started {
		return ErrNotStarted
	}

	start := time.Now()
	t := model.NewTask(uuid.NewString(), kind, athlete, run)
	s.logger.Debug(ctx, "submitting analysis task",
		logger.String("task_id", t.ID),
		logger.String("kind", string(kind)),
	)

	err := q.Enqueue(ctx, t)
	if err == nil {
		select {
		case err = <-t.Done:
			if err != nil {
				err = fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
			}
		case <-ctx.Done():
			err = fmt.Errorf("%w: %w", ErrTimeout, ctx.Err())
		}
	} else {
		switch {
		case errors.Is(err, eventqueue.ErrFull), errors.Is(err, eventqueue.ErrClosed):
			metrics.RecordErrorByComponent("service", "backpressure")
			err = fmt.Errorf("%w: %w", ErrBackpressure, err)
		default:
			err = fmt.Errorf("%w: %w", ErrTimeout, err)
		}
	}

	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeFailure
		s.failed.Add(1)
	} else {
		s.served.Add(1)
	}
	metrics.RecordAnalysis(string(kind), outcome, float64(time.Since(start).Microseconds())/1000)
	return err
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{
		Started:        s.started,
		WorkerCount:    s.workerCount,
		QueueSize:      s.queueSize,
		AnalysesServed: s.served.Load(),
		AnalysesFailed: s.failed.Load(),
	}
	if s.queue != nil {
		st.QueueLength = s.queue.Len()
	}
	if s.pool != nil {
		st.BusyWorkers = s.pool.Busy()
		st.TasksProcessed = s.pool.Processed()
	}
	return st
}
