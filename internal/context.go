package internal

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/mvc/pkg/config"
)

// configKey holds the request-scoped config store in the request context.
type configKey struct{}

// Context provides request/response access to handlers and middleware.
// It also implements context.Context by delegating to the request context.
type Context interface {
	context.Context

	// Request returns the underlying *http.Request.
	Request() *http.Request

	// Response returns the underlying http.ResponseWriter.
	Response() http.ResponseWriter

	// ResponseWriter returns the wrapped writer with write tracking and hooks.
	ResponseWriter() *ResponseWriter

	// Context returns the request's context.Context.
	Context() context.Context

	// Param returns the URL parameter value by name.
	Param(name string) string

	// Query returns the query parameter value by name.
	Query(name string) string

	// Header returns the request header value by name.
	Header(name string) string

	// SetHeader sets a response header.
	SetHeader(name, value string)

	// Config returns the request-scoped config store. The first call
	// clones the application store; later calls, including from
	// controllers, see the same clone.
	Config() *config.Store

	// IsAJAX reports whether the request carries X-Requested-With.
	IsAJAX() bool

	// JSON writes a JSON response with the given status code.
	JSON(code int, v any) error

	// String writes a plain text response with the given status code.
	String(code int, s string) error

	// NoContent writes a response with no body.
	NoContent(code int) error

	// Redirect redirects to url with the given status code.
	Redirect(code int, url string) error

	// Written reports whether the response has been started.
	Written() bool

	// Logger returns the request logger.
	Logger() *slog.Logger

	LogDebug(msg string, attrs ...any)
	LogInfo(msg string, attrs ...any)
	LogWarn(msg string, attrs ...any)
	LogError(msg string, attrs ...any)

	// Set stores a request-scoped value, visible to later middleware,
	// controllers and log extractors.
	Set(key, value any)

	// Get returns a value stored with Set.
	Get(key any) any
}

// requestContext guards request with a mutex because Set replaces it and
// Timeout runs the handler chain on another goroutine.
type requestContext struct {
	mu        sync.RWMutex
	request   *http.Request
	response  *ResponseWriter
	logger    *slog.Logger
	appConfig *config.Store
}

func newContext(w http.ResponseWriter, r *http.Request, app *App) *requestContext {
	rw, ok := w.(*ResponseWriter)
	if !ok {
		rw = NewResponseWriter(w)
	}
	return &requestContext{
		request:   r,
		response:  rw,
		logger:    app.logger,
		appConfig: app.config,
	}
}

func (c *requestContext) Request() *http.Request {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.request
}

func (c *requestContext) Response() http.ResponseWriter {
	return c.response
}

func (c *requestContext) ResponseWriter() *ResponseWriter {
	return c.response
}

func (c *requestContext) Context() context.Context {
	return c.Request().Context()
}

func (c *requestContext) Deadline() (time.Time, bool) {
	return c.Request().Context().Deadline()
}

func (c *requestContext) Done() <-chan struct{} {
	return c.Request().Context().Done()
}

func (c *requestContext) Err() error {
	return c.Request().Context().Err()
}

func (c *requestContext) Value(key any) any {
	return c.Request().Context().Value(key)
}

func (c *requestContext) Param(name string) string {
	return chi.URLParam(c.Request(), name)
}

func (c *requestContext) Query(name string) string {
	return c.Request().URL.Query().Get(name)
}

func (c *requestContext) Header(name string) string {
	return c.Request().Header.Get(name)
}

func (c *requestContext) SetHeader(name, value string) {
	c.response.Header().Set(name, value)
}

func (c *requestContext) IsAJAX() bool {
	return IsAJAX(c.Request())
}

func (c *requestContext) Written() bool {
	return c.response.Written()
}

func (c *requestContext) Logger() *slog.Logger {
	return c.logger
}

func (c *requestContext) Get(key any) any {
	return c.Request().Context().Value(key)
}

func (c *requestContext) Redirect(code int, url string) error {
	http.Redirect(c.response, c.Request(), url, code)
	return nil
}

func (c *requestContext) Config() *config.Store {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctx := c.request.Context()
	if s, ok := ctx.Value(configKey{}).(*config.Store); ok {
		return s
	}
	s := config.New()
	if c.appConfig != nil {
		s = c.appConfig.Clone()
	}
	c.request = c.request.WithContext(context.WithValue(ctx, configKey{}, s))
	return s
}

func (c *requestContext) JSON(code int, v any) error {
	c.response.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.response.WriteHeader(code)
	return json.NewEncoder(c.response).Encode(v)
}

func (c *requestContext) String(code int, s string) error {
	c.response.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.response.WriteHeader(code)
	_, err := c.response.Write([]byte(s))
	return err
}

func (c *requestContext) NoContent(code int) error {
	c.response.WriteHeader(code)
	return nil
}

func (c *requestContext) LogDebug(msg string, attrs ...any) {
	c.logger.DebugContext(c.Request().Context(), msg, attrs...)
}

func (c *requestContext) LogInfo(msg string, attrs ...any) {
	c.logger.InfoContext(c.Request().Context(), msg, attrs...)
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.logger.WarnContext(c.Request().Context(), msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.logger.ErrorContext(c.Request().Context(), msg, attrs...)
}

func (c *requestContext) Set(key, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.request = c.request.WithContext(context.WithValue(c.request.Context(), key, value))
}
