package overview

import "errors"

var (
	// ErrInvalidTime is returned when a result time is NaN or infinite.
	ErrInvalidTime = errors.New("result time must be a finite number")
	// ErrMissingDate is returned when a result carries the zero date.
	ErrMissingDate = errors.New("result date is required")
)
