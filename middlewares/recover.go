package middlewares

import (
	"runtime"

	"github.com/dmitrymomot/mvc/internal"
)

// DefaultStackSize is the default maximum stack trace size in bytes.
const DefaultStackSize = 4096

// RecoverConfig configures the recover middleware.
type RecoverConfig struct {
	StackSize         int  // Max stack trace size (default: 4096)
	DisablePrintStack bool // Keep the stack out of logs; the exception still carries it
}

// RecoverOption configures RecoverConfig.
type RecoverOption func(*RecoverConfig)

// WithRecoverStackSize sets the maximum stack trace size.
func WithRecoverStackSize(size int) RecoverOption {
	return func(cfg *RecoverConfig) {
		if size > 0 {
			cfg.StackSize = size
		}
	}
}

// WithRecoverDisablePrintStack keeps stack traces out of the panic log entry.
func WithRecoverDisablePrintStack() RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.DisablePrintStack = true
	}
}

// Recover returns middleware that turns panics in later middleware and
// plain handlers into an *mvc.Exception, so they reach the error page
// like any other error. Controller panics are already recovered by the
// dispatcher.
func Recover(opts ...RecoverOption) internal.Middleware {
	cfg := &RecoverConfig{
		StackSize: DefaultStackSize,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				stack := make([]byte, cfg.StackSize)
				stack = stack[:runtime.Stack(stack, false)]

				if cfg.DisablePrintStack {
					c.LogError("panic recovered", "panic", r)
				} else {
					c.LogError("panic recovered", "panic", r, "stack", string(stack))
				}

				err = internal.NewPanicException(r, stack)
			}()

			return next(c)
		}
	}
}
