package internal

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/mvc/pkg/config"
	"github.com/dmitrymomot/mvc/pkg/health"
	"github.com/dmitrymomot/mvc/pkg/logger"
	"github.com/dmitrymomot/mvc/pkg/view"
)

// Default server timeouts.
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
	defaultShutdownTimeout   = 30 * time.Second
)

// App routes requests to controllers and runs the HTTP server.
// App is immutable after creation; configure it through New's options.
type App struct {
	router           chi.Router
	errorHandler     ErrorHandler
	notFound         Factory
	methodNotAllowed Factory
	healthConfig     *healthConfig
	logger           *slog.Logger
	config           *config.Store
	views            *view.Engine
	translator       *Translator
	apiTrace         *bool
	environment      string
	middlewares      []Middleware
	handlers         []Handler
	staticRoutes     []staticRoute
}

// staticRoute represents a static file handler mount point.
type staticRoute struct {
	handler http.Handler
	pattern string
}

// New creates an application.
//
// Example:
//
//	app := mvc.New(
//	    mvc.WithConfig(config.MustLoadFile(assets, "config.yaml")),
//	    mvc.WithViews(view.NewEngine(themes)),
//	    mvc.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    mvc.WithHandlers(pages.Routes{}),
//	)
func New(opts ...Option) *App {
	a := &App{
		router: chi.NewRouter(),
		logger: logger.NewNope(),
		config: config.New(),
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.views == nil {
		a.views = view.NewEngine(os.DirFS("."))
	}

	topts := []TranslatorOption{
		WithTranslatorEngine(a.views),
		WithTranslatorLogger(a.logger),
		WithTranslatorEnvironment(a.environment),
	}
	if a.apiTrace != nil {
		topts = append(topts, WithTranslatorAPITrace(*a.apiTrace))
	}
	a.translator = NewTranslator(topts...)

	a.setupRoutes()
	return a
}

// Router returns the underlying chi.Router.
func (a *App) Router() chi.Router {
	return a.router
}

// Config returns the application config store. Requests work on clones.
func (a *App) Config() *config.Store {
	return a.config
}

// Translator returns the error translator shared by all controllers.
func (a *App) Translator() *Translator {
	return a.translator
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Run starts the HTTP server and blocks until shutdown.
//
// Example:
//
//	err := app.Run(":8080", mvc.ShutdownHook(redis.Shutdown(client)))
func (a *App) Run(addr string, opts ...RunOption) error {
	cfg := buildRunConfig(opts...)
	if cfg.address == "" {
		cfg.address = addr
	}
	if cfg.logger == nil {
		cfg.logger = a.logger
	}

	return runServer(runtimeConfig{
		handler:         a.router,
		address:         cfg.address,
		logger:          cfg.logger,
		shutdownTimeout: cfg.shutdownTimeout,
		startupHooks:    cfg.startupHooks,
		shutdownHooks:   cfg.shutdownHooks,
		baseCtx:         cfg.baseCtx,
	})
}

// setupRoutes configures the router with middleware and handlers.
func (a *App) setupRoutes() {
	if a.notFound != nil {
		a.router.NotFound(a.wrapHandler(a.controllerHandler(a.notFound)))
	}
	if a.methodNotAllowed != nil {
		a.router.MethodNotAllowed(a.wrapHandler(a.controllerHandler(a.methodNotAllowed)))
	}

	for _, mw := range a.middlewares {
		a.router.Use(a.adaptMiddleware(mw))
	}

	for _, sr := range a.staticRoutes {
		a.router.Mount(sr.pattern, sr.handler)
	}

	if a.healthConfig != nil {
		a.router.Get(a.healthConfig.livenessPath,
			a.wrapHandler(a.controllerHandler(healthFactory(nil))))
		a.router.Get(a.healthConfig.readinessPath,
			a.wrapHandler(a.controllerHandler(healthFactory(a.healthConfig.checks, health.WithLogger(a.logger)))))
	}

	r := &routerAdapter{router: a.router, app: a}
	for _, h := range a.handlers {
		h.Routes(r)
	}
}

// controllerHandler builds a controller per request and dispatches it.
func (a *App) controllerHandler(f Factory) HandlerFunc {
	return func(c Context) error {
		cfg := c.Config()
		req := c.Request()
		base := NewBase(routeFromRequest(req),
			WithBaseRequest(req),
			WithBaseResponseWriter(c.Response()),
			WithBaseConfig(cfg),
			WithBaseLogger(c.Logger()),
			WithBaseTranslator(a.translator),
			WithBaseViews(a.views),
		)

		ctrl := f(base)
		if ctrl == nil {
			return ErrNoController
		}
		return Dispatch(c.Context(), ctrl)
	}
}

// wrapHandler converts a HandlerFunc to http.HandlerFunc.
func (a *App) wrapHandler(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := newContext(w, r, a)
		if err := h(c); err != nil {
			a.handleError(c, err)
		}
	}
}

// handleError handles errors no controller turned into a response:
// middleware failures, nil controllers and failed error pages.
// A custom ErrorHandler runs first; otherwise the error goes through
// the translator, and plain text is the final fallback.
func (a *App) handleError(c Context, err error) {
	c.LogError("unhandled error", slog.String("error", err.Error()))

	if c.Written() {
		return
	}
	if a.errorHandler != nil {
		if herr := a.errorHandler(c, err); herr == nil || c.Written() {
			return
		}
	}

	resp := a.translator.Translate(c.Request(), c.Config(), err)
	serr := resp.Send(c.Context(), c.Response())
	if serr == nil {
		return
	}
	c.LogError("error page failed", slog.String("error", serr.Error()))
	if c.Written() {
		return
	}
	http.Error(c.Response(), http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
