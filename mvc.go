package mvc

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/mvc/internal"
	"github.com/dmitrymomot/mvc/pkg/config"
	"github.com/dmitrymomot/mvc/pkg/logger"
	"github.com/dmitrymomot/mvc/pkg/view"
)

// Type aliases - public API
type (
	// App routes requests to controllers and runs the HTTP server.
	App = internal.App

	// Router is the interface handlers use to declare routes.
	Router = internal.Router

	// Context provides request/response access to middleware and plain handlers.
	Context = internal.Context

	// Handler declares routes on a router.
	Handler = internal.Handler

	// HandlerFunc is the signature for plain route handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc to add cross-cutting concerns.
	Middleware = internal.Middleware

	// ErrorHandler handles errors no controller turned into a response.
	ErrorHandler = internal.ErrorHandler

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// HealthOption configures health check endpoints.
	HealthOption = internal.HealthOption

	// ContextExtractor extracts a slog attribute from context.
	// Used with WithLogger to add request-scoped values to logs.
	ContextExtractor = logger.ContextExtractor

	// ResponseWriter wraps http.ResponseWriter with write tracking and hooks.
	ResponseWriter = internal.ResponseWriter

	// Controller is a request handler with a RunBefore, Run, RunAfter lifecycle.
	Controller = internal.Controller

	// Factory builds a controller for one request.
	Factory = internal.Factory

	// Base is the per-request state embedded by concrete controllers.
	Base = internal.Base

	// BaseOption configures a Base.
	BaseOption = internal.BaseOption

	// DataCollection is the ordered view data of a controller.
	DataCollection = internal.DataCollection

	// MetaOption selects a metadata field for Base.SetMetas.
	MetaOption = internal.MetaOption

	// Route describes the matched route.
	Route = internal.Route

	// Exception is an error with an application code and a stack trace.
	Exception = internal.Exception

	// ExceptionOption configures an Exception.
	ExceptionOption = internal.ExceptionOption

	// Response is a status code and content sent in a given format.
	Response = internal.Response

	// Format is the wire format of a Response.
	Format = internal.Format

	// Engine is the rendering strategy of a Response.
	Engine = internal.Engine

	// Component is the interface for renderable templates.
	Component = internal.Component

	// Translator turns errors into JSON or themed HTML responses.
	Translator = internal.Translator

	// TranslatorOption configures a Translator.
	TranslatorOption = internal.TranslatorOption
)

// Response formats and engines.
const (
	FormatJSON = internal.FormatJSON
	FormatHTML = internal.FormatHTML

	EngineAPI      = internal.EngineAPI
	EngineTemplate = internal.EngineTemplate
)

// Error page template variables and request header names.
const (
	VarContent            = internal.VarContent
	VarMeta               = internal.VarMeta
	HeaderRequestedWith   = internal.HeaderRequestedWith
	DefaultLayoutTemplate = internal.DefaultLayoutTemplate
)

// Sentinel errors.
var (
	ErrUnsupportedResponse = internal.ErrUnsupportedResponse
	ErrNoResponseWriter    = internal.ErrNoResponseWriter
	ErrSendFailed          = internal.ErrSendFailed
	ErrNoController        = internal.ErrNoController
)

// New creates an application with the given options.
// The App is immutable after creation.
//
// Example:
//
//	app := mvc.New(
//	    mvc.WithConfig(config.MustLoadFile(assets, "config.yaml")),
//	    mvc.WithViews(view.NewEngine(themes)),
//	    mvc.WithHandlers(pages.Routes{}),
//	    mvc.WithNotFound(mvc.StatusFactory(http.StatusNotFound)),
//	)
//
//	err := app.Run(":8080")
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// App options

// WithMiddleware adds global middleware to the application.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithHandlers registers handlers that declare routes.
func WithHandlers(h ...Handler) Option {
	return internal.WithHandlers(h...)
}

// WithStaticFiles mounts fsys/subDir at pattern. Directory listings are disabled.
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return internal.WithStaticFiles(pattern, fsys, subDir)
}

// WithErrorHandler sets the handler for errors that escape controllers.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithNotFound routes unmatched requests through a controller.
func WithNotFound(f Factory) Option {
	return internal.WithNotFound(f)
}

// WithMethodNotAllowed routes 405 responses through a controller.
func WithMethodNotAllowed(f Factory) Option {
	return internal.WithMethodNotAllowed(f)
}

// WithHealthChecks enables /health/live and /health/ready.
//
//	mvc.WithHealthChecks(
//	    mvc.WithReadinessCheck("redis", redis.Healthcheck(client)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

// WithLivenessPath sets a custom liveness endpoint path.
func WithLivenessPath(path string) HealthOption {
	return internal.WithLivenessPath(path)
}

// WithReadinessPath sets a custom readiness endpoint path.
func WithReadinessPath(path string) HealthOption {
	return internal.WithReadinessPath(path)
}

// WithReadinessCheck adds a named readiness check.
func WithReadinessCheck(name string, fn func(context.Context) error) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// WithLogger creates a JSON logger tagged with component.
// Extractors pull values from context (e.g. request_id).
//
//	mvc.New(
//	    mvc.WithLogger("site", middlewares.RequestIDExtractor()),
//	)
func WithLogger(component string, extractors ...ContextExtractor) Option {
	return internal.WithLogger(component, extractors...)
}

// WithCustomLogger sets a fully custom logger.
func WithCustomLogger(l *slog.Logger) Option {
	return internal.WithCustomLogger(l)
}

// WithConfig sets the application config store. Each request works on a clone.
func WithConfig(s *config.Store) Option {
	return internal.WithConfig(s)
}

// WithEnvironment sets the environment name; "prod" hides error details.
func WithEnvironment(env string) Option {
	return internal.WithEnvironment(env)
}

// WithViews sets the template engine for layouts and error pages.
func WithViews(e *view.Engine) Option {
	return internal.WithViews(e)
}

// WithAPITrace controls whether AJAX error responses carry the stack trace.
func WithAPITrace(enabled bool) Option {
	return internal.WithAPITrace(enabled)
}

// Run options

// Address overrides the address passed to App.Run.
func Address(addr string) RunOption {
	return internal.Address(addr)
}

// Logger sets the server logger.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout sets the graceful shutdown timeout. Defaults to 30 seconds.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// StartupHook registers a function run before the server listens.
func StartupHook(fn func(context.Context) error) RunOption {
	return internal.StartupHook(fn)
}

// ShutdownHook registers a cleanup function run after the server stops.
//
//	mvc.ShutdownHook(redis.Shutdown(client))
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// WithContext sets the base context for signal handling.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

// Controllers

// NewBase creates controller state outside the router, mostly for tests
// and CGI entry points.
func NewBase(route Route, opts ...BaseOption) *Base {
	return internal.NewBase(route, opts...)
}

// WithBaseRequest sets the request of a Base.
func WithBaseRequest(r *http.Request) BaseOption {
	return internal.WithBaseRequest(r)
}

// WithBaseResponseWriter sets the writer responses are sent to.
func WithBaseResponseWriter(w http.ResponseWriter) BaseOption {
	return internal.WithBaseResponseWriter(w)
}

// WithBaseConfig sets the request-scoped config store.
func WithBaseConfig(s *config.Store) BaseOption {
	return internal.WithBaseConfig(s)
}

// WithBaseLogger sets the controller logger.
func WithBaseLogger(l *slog.Logger) BaseOption {
	return internal.WithBaseLogger(l)
}

// WithBaseTranslator sets the error translator.
func WithBaseTranslator(t *Translator) BaseOption {
	return internal.WithBaseTranslator(t)
}

// WithBaseViews sets the template engine used by Render.
func WithBaseViews(e *view.Engine) BaseOption {
	return internal.WithBaseViews(e)
}

// WithMetaTitle prefixes title to the site title in Base.SetMetas.
func WithMetaTitle(title string) MetaOption {
	return internal.WithMetaTitle(title)
}

// WithMetaDescription replaces the page description in Base.SetMetas.
func WithMetaDescription(description string) MetaOption {
	return internal.WithMetaDescription(description)
}

// Dispatch runs the controller lifecycle and routes errors to HandleError.
func Dispatch(ctx context.Context, c Controller) error {
	return internal.Dispatch(ctx, c)
}

// StatusFactory returns a Factory that renders the error page with status.
func StatusFactory(status int) Factory {
	return internal.StatusFactory(status)
}

// NewDataCollection creates an empty DataCollection.
func NewDataCollection() *DataCollection {
	return internal.NewDataCollection()
}

// Errors and responses

// Bound directly so the recorded trace starts at the caller.
var (
	// NewException creates an Exception recording the caller's stack.
	//
	//	return mvc.NewException(404, "post not found", mvc.WithStatus(http.StatusNotFound))
	NewException = internal.NewException

	// WrapException wraps err with an application code.
	WrapException = internal.WrapException

	// AsException returns the Exception in err's chain, wrapping other errors.
	AsException = internal.AsException
)

// IsException reports whether err's chain contains an Exception.
func IsException(err error) bool {
	return internal.IsException(err)
}

// WithStatus sets the HTTP status of an Exception.
func WithStatus(status int) ExceptionOption {
	return internal.WithStatus(status)
}

// WithCause attaches the underlying error to an Exception.
func WithCause(err error) ExceptionOption {
	return internal.WithCause(err)
}

// NewResponse creates a Response for a valid format/engine pair.
func NewResponse(format Format, engine Engine) (*Response, error) {
	return internal.NewResponse(format, engine)
}

// NewTranslator creates an error Translator.
func NewTranslator(opts ...TranslatorOption) *Translator {
	return internal.NewTranslator(opts...)
}

// IsAJAX reports whether r carries a non-blank X-Requested-With header.
func IsAJAX(r *http.Request) bool {
	return internal.IsAJAX(r)
}

// Helpers

// Param returns the URL parameter name converted to T.
func Param[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string) T {
	return internal.Param[T](c, name)
}

// ParamDefault is like Param but returns def when the parameter is
// missing or malformed.
func ParamDefault[T ~string | ~int | ~int64 | ~float64 | ~bool](c Context, name string, def T) T {
	return internal.ParamDefault(c, name, def)
}

// ContextValue returns the request-scoped value stored under key.
func ContextValue[T any](c Context, key any) T {
	return internal.ContextValue[T](c, key)
}
