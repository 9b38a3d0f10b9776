package health

import "errors"

var (
	// ErrCheckFailed wraps each failing check returned by Run.
	ErrCheckFailed = errors.New("health: check failed")

	// ErrCheckTimeout wraps checks that exceeded the run timeout.
	ErrCheckTimeout = errors.New("health: check timeout")
)
