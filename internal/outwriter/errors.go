package outwriter

import "errors"

var (
	ErrUnknownFormat      = errors.New("unknown output format")
	ErrOutputFileRequired = errors.New("output file is required for this format")
	ErrInvalidPrecision   = errors.New("precision must be between 0 and 6")
)
