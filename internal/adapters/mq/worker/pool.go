package worker

import (
	"context"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/okian/aquascore/pkg/logger"
	"github.com/okian/aquascore/pkg/metrics"
)

const poolShutdownTimeout = 30 * time.Second

// Pool manages a fixed set of workers reading from one queue.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue

	busy      atomic.Int64
	processed atomic.Int64

	logger logger.Logger
}

// NewPool creates a pool of workerCount workers. A non-positive count uses runtime.NumCPU().
func NewPool(workerCount int, q Queue) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}
	p := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		queue:   q,
		logger:  logger.Get().Named("worker-pool"),
	}
	for i := range p.workers {
		name := "worker-" + strconv.Itoa(i)
		p.workers[i] = NewInMemoryWorker(q,
			WithName(name),
			WithLogger(p.logger.Named(name)),
			withCounters(&p.busy, &p.processed),
		)
	}
	metrics.UpdateWorkerCount(workerCount)
	metrics.UpdateWorkerBusy(0)
	return p
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Size returns the number of workers.
func (p *Pool) Size() int { return len(p.workers) }

// Busy returns the number of workers currently running a task.
func (p *Pool) Busy() int { return int(p.busy.Load()) }

// Processed returns the number of tasks run since creation.
func (p *Pool) Processed() int64 { return p.processed.Load() }

// Shutdown closes the queue, lets workers drain what is already queued, and
// waits for them up to ctx or an internal timeout.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
			return shutdownCtx.Err()
		}
	}
	return nil
}
