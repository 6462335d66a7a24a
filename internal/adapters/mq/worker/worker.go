// Package worker runs analysis tasks taken from the queue on a fixed-size pool.
package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/aquascore/internal/domain/model"
	"github.com/okian/aquascore/pkg/logger"
	"github.com/okian/aquascore/pkg/metrics"
)

// Queue defines how workers receive tasks.
type Queue interface {
	Dequeue() <-chan model.Task
}

// Worker executes tasks until stopped.
type Worker interface {
	// Run starts the worker loop until ctx is canceled, Shutdown is called
	// or the queue is closed and drained.
	Run(ctx context.Context)

	// Shutdown stops the worker after its current task.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker.
type InMemoryWorker struct {
	queue  Queue
	name   string
	logger logger.Logger

	// Shared with the pool; nil when the worker runs standalone.
	busy      *atomic.Int64
	processed *atomic.Int64

	shutdown     chan struct{}
	shutdownOnce sync.Once
	done         chan struct{}
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(q Queue, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:    q,
		name:     "worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = logger.Get().Named(w.name)
	}
	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	tasks := w.queue.Dequeue()
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case t, ok := <-tasks:
			if !ok {
				return
			}
			w.process(ctx, t)
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	w.shutdownOnce.Do(func() { close(w.shutdown) })
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// Done is closed once Run has returned.
func (w *InMemoryWorker) Done() <-chan struct{} { return w.done }

// process runs one task and delivers its outcome on the task's Done channel.
func (w *InMemoryWorker) process(ctx context.Context, t model.Task) { //nolint:gocritic // hugeParam: Task arrives by value from the channel
	metrics.RecordQueueDequeue()
	if !t.EnqueuedAt.IsZero() {
		metrics.RecordQueueWait(float64(time.Since(t.EnqueuedAt).Microseconds()) / 1000)
	}

	w.setBusy(1)
	start := time.Now()
	err := execute(ctx, t)
	metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Microseconds()) / 1000)
	w.setBusy(-1)
	if w.processed != nil {
		w.processed.Add(1)
	}

	if err != nil {
		kind := "task_error"
		if errors.Is(err, ErrTaskPanicked) {
			kind = "panic"
		}
		metrics.RecordErrorByComponent("worker", kind)
		w.logger.Debug(ctx, "task failed",
			logger.String("task_id", t.ID),
			logger.String("kind", string(t.Kind)),
			logger.Error(err),
		)
	}

	if t.Done == nil {
		return
	}
	select {
	case t.Done <- err:
	default:
		w.logger.Warn(ctx, "task result dropped", logger.String("task_id", t.ID))
	}
}

// execute runs the task, turning a panic into ErrTaskPanicked.
func execute(ctx context.Context, t model.Task) (err error) { //nolint:gocritic // hugeParam
	defer func() {
		if r := recover(); r != nil {
			metrics.RecordWorkerPanic()
			err = fmt.Errorf("%w: %v", ErrTaskPanicked, r)
		}
	}()
	if t.Run == nil {
		return ErrNoRunFunc
	}
	return t.Run(ctx)
}

func (w *InMemoryWorker) setBusy(delta int64) {
	if w.busy == nil {
		return
	}
	metrics.UpdateWorkerBusy(int(w.busy.Add(delta)))
}
