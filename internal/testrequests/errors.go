package testrequests

import "errors"

var (
	ErrUnexpectedStatus   = errors.New("unexpected status")
	ErrMismatch           = errors.New("response does not match local analysis")
	ErrVerificationFailed = errors.New("verification failed")
	ErrNothingToSave      = errors.New("no requests to save")
)
