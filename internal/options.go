package internal

import (
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/mvc/pkg/config"
	"github.com/dmitrymomot/mvc/pkg/health"
	"github.com/dmitrymomot/mvc/pkg/logger"
	"github.com/dmitrymomot/mvc/pkg/view"
)

// Option configures the application.
type Option func(*App)

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithHandlers registers handlers that declare routes.
// Each handler's Routes method is called during setup.
func WithHandlers(h ...Handler) Option {
	return func(a *App) {
		a.handlers = append(a.handlers, h...)
	}
}

// WithStaticFiles mounts a static file handler at the given pattern.
// Directory listings are disabled.
//
// Example:
//
//	//go:embed public
//	var assets embed.FS
//
//	mvc.New(
//	    mvc.WithStaticFiles("/static/", assets, "public"),
//	)
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return func(a *App) {
		subFS, err := fs.Sub(fsys, subDir)
		if err != nil {
			panic(err)
		}

		files := http.StripPrefix(strings.TrimSuffix(pattern, "/"), http.FileServerFS(subFS))

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "/") {
				http.NotFound(w, r)
				return
			}

			w.Header().Set("Cache-Control", "public, max-age=3600")
			w.Header().Set("X-Content-Type-Options", "nosniff")

			files.ServeHTTP(w, r)
		})

		a.staticRoutes = append(a.staticRoutes, staticRoute{handler: handler, pattern: pattern})
	}
}

// WithErrorHandler sets the handler for errors that escape a controller,
// such as a factory returning nil or a response that could not be sent.
// Controller errors go through Controller.HandleError first.
//
// Example:
//
//	mvc.WithErrorHandler(func(c mvc.Context, err error) error {
//	    return c.String(http.StatusServiceUnavailable, "try again later")
//	})
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) {
		a.errorHandler = h
	}
}

// WithNotFound routes unmatched requests through a controller, so 404
// pages use the active theme like any other error.
//
// Example:
//
//	mvc.WithNotFound(mvc.StatusFactory(http.StatusNotFound))
func WithNotFound(f Factory) Option {
	return func(a *App) {
		a.notFound = f
	}
}

// WithMethodNotAllowed routes 405 responses through a controller.
func WithMethodNotAllowed(f Factory) Option {
	return func(a *App) {
		a.methodNotAllowed = f
	}
}

// WithHealthChecks enables health check endpoints with optional configuration.
// Liveness (/health/live): Always returns OK if process is running.
// Readiness (/health/ready): Runs all configured checks.
//
// Example:
//
//	mvc.WithHealthChecks(
//	    mvc.WithReadinessCheck("redis", redis.Healthcheck(client)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		cfg := &healthConfig{
			livenessPath:  defaultLivenessPath,
			readinessPath: defaultReadinessPath,
			checks:        make(health.Checks),
		}
		for _, opt := range opts {
			opt(cfg)
		}
		a.healthConfig = cfg
	}
}

// WithLogger creates a logger with a component name and optional extractors.
// The logger is shared by the request context, controllers and the
// error translator.
//
// Example:
//
//	mvc.New(
//	    mvc.WithLogger("site", middlewares.RequestIDExtractor()),
//	)
func WithLogger(component string, extractors ...logger.ContextExtractor) Option {
	return func(a *App) {
		a.logger = logger.New(logger.WithExtractors(extractors...)).With("component", component)
	}
}

// WithCustomLogger sets a fully custom logger.
func WithCustomLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithConfig sets the application config store.
// Every request works on its own clone of it.
//
// When the store holds config.KeyEnvironment and no WithEnvironment
// option is given, that value selects the environment.
func WithConfig(s *config.Store) Option {
	return func(a *App) {
		if s == nil {
			return
		}
		a.config = s
		if a.environment == "" {
			a.environment = config.ValueOr(s, config.KeyEnvironment, "")
		}
	}
}

// WithEnvironment sets the environment name. In config.EnvProduction
// HTML error pages carry no debug output. Defaults to production.
func WithEnvironment(env string) Option {
	return func(a *App) {
		if env != "" {
			a.environment = env
		}
	}
}

// WithViews sets the template engine used for layouts and error pages.
// Defaults to an engine over the working directory.
func WithViews(e *view.Engine) Option {
	return func(a *App) {
		if e != nil {
			a.views = e
		}
	}
}

// WithAPITrace controls whether JSON error responses carry the full
// stack trace. Enabled by default; when disabled only the message is sent.
func WithAPITrace(enabled bool) Option {
	return func(a *App) {
		a.apiTrace = &enabled
	}
}
