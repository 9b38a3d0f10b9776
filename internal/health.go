package internal

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrymomot/mvc/pkg/health"
)

// healthConfig holds health check endpoint configuration.
type healthConfig struct {
	checks        health.Checks
	livenessPath  string
	readinessPath string
}

// Default health check paths.
const (
	defaultLivenessPath  = "/health/live"
	defaultReadinessPath = "/health/ready"
)

// HealthOption configures health check endpoints.
type HealthOption func(*healthConfig)

// WithLivenessPath sets a custom liveness endpoint path.
// Defaults to "/health/live".
func WithLivenessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.livenessPath = path
		}
	}
}

// WithReadinessPath sets a custom readiness endpoint path.
// Defaults to "/health/ready".
func WithReadinessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.readinessPath = path
		}
	}
}

// WithReadinessCheck adds a named readiness check.
//
//	mvc.WithReadinessCheck("redis", redis.Healthcheck(client))
func WithReadinessCheck(name string, fn func(context.Context) error) HealthOption {
	return func(c *healthConfig) {
		if c.checks == nil {
			c.checks = make(health.Checks)
		}
		c.checks[name] = fn
	}
}

// healthController answers liveness (no checks) and readiness probes.
// Clients asking for JSON, including AJAX requests, get a health.Response
// body; everyone else gets the status text.
type healthController struct {
	*Base
	checks health.Checks
	opts   []health.Option
}

func healthFactory(checks health.Checks, opts ...health.Option) Factory {
	return func(b *Base) Controller {
		return &healthController{Base: b, checks: checks, opts: opts}
	}
}

// RunBefore skips theme resolution: probes never render a layout.
func (h *healthController) RunBefore(context.Context) error { return nil }

func (h *healthController) Run(ctx context.Context) error {
	report := health.Report(ctx, h.checks, h.opts...)

	code := http.StatusOK
	if report.Status != health.StatusHealthy {
		code = http.StatusServiceUnavailable
	}

	if !wantsJSON(h.Request()) {
		w := h.ResponseWriter()
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(code)
		_, err := io.WriteString(w, http.StatusText(code))
		return err
	}

	resp, err := NewResponse(FormatJSON, EngineAPI)
	if err != nil {
		return err
	}
	h.SetResponse(resp.
		SetHTTPCode(code).
		SetHeader("Cache-Control", "no-store").
		SetContent(report))
	return h.Send(ctx)
}

func wantsJSON(r *http.Request) bool {
	if r.URL.Query().Get("format") == "json" || IsAJAX(r) {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
