package worker

import "errors"

var (
	// ErrTaskPanicked wraps the value recovered from a panicking task.
	ErrTaskPanicked = errors.New("task panicked")
	// ErrNoRunFunc is returned for a task without a Run function.
	ErrNoRunFunc = errors.New("task has no run function")
)
