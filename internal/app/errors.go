package service

import "errors"

// Sentinel errors returned by the service. Transports map them to status codes.
var (
	ErrNotStarted     = errors.New("service not started")
	ErrBackpressure   = errors.New("analysis queue is full")
	ErrAnalysisFailed = errors.New("analysis failed")
	ErrTimeout        = errors.New("analysis timed out")
)
