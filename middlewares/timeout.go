package middlewares

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrymomot/mvc/internal"
)

// DefaultTimeout is the default request timeout.
const DefaultTimeout = 30 * time.Second

// TimeoutConfig configures the timeout middleware.
type TimeoutConfig struct {
	Timeout time.Duration
	Status  int // Response status on timeout (default: 503)
}

// TimeoutOption configures TimeoutConfig.
type TimeoutOption func(*TimeoutConfig)

// WithTimeoutStatus sets the HTTP status of the timeout error page.
func WithTimeoutStatus(status int) TimeoutOption {
	return func(cfg *TimeoutConfig) {
		if status > 0 {
			cfg.Status = status
		}
	}
}

// Timeout returns middleware that bounds request handling time.
// When the deadline passes first it returns an *mvc.Exception whose
// cause is a *TimeoutError, rendered by the error page with cfg.Status.
//
// The handler keeps running in its goroutine after the timeout. Long
// operations should watch GetTimeoutContext(c).Done().
func Timeout(timeout time.Duration, opts ...TimeoutOption) internal.Middleware {
	cfg := &TimeoutConfig{
		Timeout: timeout,
		Status:  http.StatusServiceUnavailable,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			ctx, cancel := context.WithTimeout(c.Context(), cfg.Timeout)
			defer cancel()

			c.Set(timeoutContextKey{}, ctx)

			done := make(chan error, 1)
			go func() {
				done <- next(c)
			}()

			select {
			case err := <-done:
				return err
			case <-ctx.Done():
				if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
					return ctx.Err()
				}
				c.LogWarn("request timeout", "timeout", cfg.Timeout.String())
				te := &TimeoutError{Duration: cfg.Timeout}
				return internal.NewException(0, te.Error(),
					internal.WithStatus(cfg.Status),
					internal.WithCause(te),
				)
			}
		}
	}
}

type timeoutContextKey struct{}

// GetTimeoutContext returns the deadline-bound context set by Timeout,
// or the request context when Timeout is not in the chain.
func GetTimeoutContext(c internal.Context) context.Context {
	if v, ok := c.Get(timeoutContextKey{}).(context.Context); ok {
		return v
	}
	return c.Context()
}
