package health

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/mvc/pkg/logger"
)

const (
	defaultTimeout = 5 * time.Second

	// StatusHealthy indicates all checks passed.
	StatusHealthy = "healthy"
	// StatusUnhealthy indicates one or more checks failed.
	StatusUnhealthy = "unhealthy"
)

// CheckFunc probes one dependency. redis.Healthcheck and
// view.Engine-backed checks have this shape.
type CheckFunc func(ctx context.Context) error

// Checks is a map of named health check functions.
type Checks map[string]CheckFunc

// Response represents a health check response.
type Response struct {
	Checks map[string]Check `json:"checks,omitempty"`
	Status string           `json:"status"`
}

// Check represents the status of a single health check.
type Check struct {
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
	timedOut bool
}

type config struct {
	logger  *slog.Logger
	timeout time.Duration
}

// Option configures health check behavior.
type Option func(*config)

// WithTimeout bounds the whole check run. Defaults to 5 seconds.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger failed checks are reported to.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		timeout: defaultTimeout,
		logger:  logger.NewNope(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Run executes checks concurrently and returns nil when all pass.
// Otherwise the error wraps ErrCheckFailed (or ErrCheckTimeout when a
// check ran out of time) and lists the failing checks by name.
func Run(ctx context.Context, checks Checks, opts ...Option) error {
	resp := Report(ctx, checks, opts...)
	if resp.Status == StatusHealthy {
		return nil
	}

	names := make([]string, 0, len(resp.Checks))
	for name := range resp.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		c := resp.Checks[name]
		if c.Status == StatusHealthy {
			continue
		}
		sentinel := ErrCheckFailed
		if c.timedOut {
			sentinel = ErrCheckTimeout
		}
		errs = append(errs, fmt.Errorf("%w: %s: %s", sentinel, name, c.Error))
	}
	return errors.Join(errs...)
}

// Report executes checks concurrently and returns the per-check result.
// An empty set of checks is healthy.
func Report(ctx context.Context, checks Checks, opts ...Option) *Response {
	cfg := newConfig(opts...)
	if len(checks) == 0 {
		return &Response{Status: StatusHealthy}
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	var (
		mu      sync.Mutex
		g       errgroup.Group
		results = make(map[string]Check, len(checks))
		status  = StatusHealthy
	)

	for name, check := range checks {
		g.Go(func() error {
			result := Check{Status: StatusHealthy}
			if err := check(ctx); err != nil {
				result = Check{
					Status:   StatusUnhealthy,
					Error:    err.Error(),
					timedOut: errors.Is(err, context.DeadlineExceeded),
				}
				cfg.logger.WarnContext(ctx, "health check failed",
					slog.String("check", name),
					slog.String("error", err.Error()),
				)
			}

			mu.Lock()
			defer mu.Unlock()
			results[name] = result
			if result.Status != StatusHealthy {
				status = StatusUnhealthy
			}
			return nil
		})
	}
	_ = g.Wait()

	return &Response{Status: status, Checks: results}
}
