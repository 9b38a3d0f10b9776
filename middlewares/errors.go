package middlewares

import (
	"errors"
	"fmt"
	"time"
)

// TimeoutError is the cause of the exception returned by Timeout.
type TimeoutError struct {
	Duration time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request timeout after %s", e.Duration)
}

// IsTimeoutError reports whether err's chain contains a TimeoutError.
func IsTimeoutError(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}

// AsTimeoutError extracts the TimeoutError from err's chain.
func AsTimeoutError(err error) (*TimeoutError, bool) {
	var te *TimeoutError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}
