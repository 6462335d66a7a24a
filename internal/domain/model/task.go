package model

import (
	"context"
	"time"
)

// TaskKind identifies which analysis a task runs.
type TaskKind string

const (
	TaskOverview   TaskKind = "overview"
	TaskComparison TaskKind = "comparison"
)

// Task is a unit of work handed from the service to the worker pool.
// Run is executed exactly once by a worker and its error is delivered on Done.
type Task struct {
	ID      string
	Kind    TaskKind
	Athlete string
	Run     func(ctx context.Context) error
	Done    chan error // buffered, capacity 1

	// EnqueuedAt is stamped by the queue on acceptance.
	EnqueuedAt time.Time
}

// NewTask builds a task with a ready Done channel.
func NewTask(id string, kind TaskKind, athlete string, run func(ctx context.Context) error) Task {
	return Task{
		ID:      id,
		Kind:    kind,
		Athlete: athlete,
		Run:     run,
		Done:    make(chan error, 1),
	}
}
