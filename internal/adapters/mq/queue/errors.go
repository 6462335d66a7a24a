package queue

import "errors"

// Sentinel kinds for enqueue rejections.
var (
	ErrFull   = errors.New("queue full")
	ErrClosed = errors.New("queue closed")
)
