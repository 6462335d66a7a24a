package types

import "errors"

// Validation errors. Callers map these to a bad-request response.
var (
	ErrMissingAthlete   = errors.New("athlete_name is required")
	ErrMissingEventType = errors.New("event_type is required")
	ErrInvalidEventDate = errors.New("event_date must be RFC3339 or YYYY-MM-DD")
	ErrInvalidTime      = errors.New("time must be a finite number")
	ErrTooManyResults   = errors.New("too many results")
)
