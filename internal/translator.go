package internal

import (
	"encoding/json"
	"fmt"
	"html"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"path"

	"github.com/dmitrymomot/mvc/pkg/config"
	"github.com/dmitrymomot/mvc/pkg/logger"
	"github.com/dmitrymomot/mvc/pkg/view"
)

// Template variables bound on the error page.
const (
	VarContent = "content"
	VarMeta    = "meta"
)

// errorLayoutTemplate is the layout file rendered for HTML error pages.
const errorLayoutTemplate = "Main"

// Translator turns an error into a response: JSON for AJAX requests,
// the theme's Main layout for everything else.
type Translator struct {
	engine         *view.Engine
	logger         *slog.Logger
	env            string
	exposeAPITrace bool
}

// TranslatorOption configures a Translator.
type TranslatorOption func(*Translator)

// WithTranslatorEngine sets the template engine used for HTML error pages.
func WithTranslatorEngine(e *view.Engine) TranslatorOption {
	return func(t *Translator) {
		if e != nil {
			t.engine = e
		}
	}
}

// WithTranslatorLogger sets the logger that records translated errors.
func WithTranslatorLogger(l *slog.Logger) TranslatorOption {
	return func(t *Translator) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithTranslatorEnvironment fixes the environment name. When unset the
// environment is read from the config store (app.env) on every call,
// defaulting to "prod".
func WithTranslatorEnvironment(env string) TranslatorOption {
	return func(t *Translator) {
		t.env = env
	}
}

// WithTranslatorAPITrace controls whether AJAX error responses carry the stack
// trace. Enabled by default in every environment; with it disabled the
// JSON body is the error message.
func WithTranslatorAPITrace(enabled bool) TranslatorOption {
	return func(t *Translator) {
		t.exposeAPITrace = enabled
	}
}

// NewTranslator creates a Translator. Without WithTranslatorEngine,
// layouts are read from the working directory.
func NewTranslator(opts ...TranslatorOption) *Translator {
	t := &Translator{
		logger:         logger.NewNope(),
		exposeAPITrace: true,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.engine == nil {
		t.engine = view.NewEngine(os.DirFS("."))
	}
	return t
}

// Engine returns the template engine used for error pages.
func (t *Translator) Engine() *view.Engine {
	return t.engine
}

// Translate builds the error response for err. It never fails; writing
// the response is left to Response.Send.
func (t *Translator) Translate(r *http.Request, cfg *config.Store, err error) *Response {
	ex := AsException(err)
	if ex == nil {
		ex = NewException(0, http.StatusText(http.StatusInternalServerError))
	}
	if cfg == nil {
		cfg = config.New()
	}

	ctx := r.Context()
	t.logger.ErrorContext(ctx, "request failed",
		slog.Int("code", ex.Code),
		slog.String("error", ex.Error()),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("trace", ex.Trace),
	)

	if IsAJAX(r) {
		return t.apiResponse(ex)
	}
	return t.pageResponse(cfg, ex)
}

func (t *Translator) apiResponse(ex *Exception) *Response {
	payload := ex.Trace
	if !t.exposeAPITrace {
		payload = ex.Error()
	}
	// Marshaling a string cannot fail.
	body, _ := json.Marshal(payload)

	resp, _ := NewResponse(FormatJSON, EngineAPI)
	return resp.SetHTTPCode(ex.StatusCode()).SetContent(json.RawMessage(body))
}

func (t *Translator) pageResponse(cfg *config.Store, ex *Exception) *Response {
	var content template.HTML
	if t.environment(cfg) != config.EnvProduction {
		content = DebugFragment(ex)
	}

	layoutPath := t.lookupString(cfg, config.KeyThemeLayoutPath)
	themeName := t.lookupString(cfg, config.KeyThemeName)

	page := t.engine.New(path.Join(layoutPath, "Template", themeName, errorLayoutTemplate)).
		SetVar(VarContent, content).
		SetVar(VarMeta, config.GetMeta(cfg))

	resp, _ := NewResponse(FormatHTML, EngineTemplate)
	return resp.SetHTTPCode(ex.StatusCode()).SetContent(page)
}

func (t *Translator) environment(cfg *config.Store) string {
	if t.env != "" {
		return t.env
	}
	if env, err := config.String(cfg, config.KeyEnvironment); err == nil && env != "" {
		return env
	}
	return config.EnvProduction
}

// lookupString reads a theme key for the error page. A missing key is
// logged and read as empty so the page can still be attempted.
func (t *Translator) lookupString(cfg *config.Store, key string) string {
	v, err := config.String(cfg, key)
	if err != nil {
		t.logger.Warn("error page config missing", slog.String("key", key), slog.String("error", err.Error()))
	}
	return v
}

// DebugFragment renders the developer view of an exception:
// <b>Exception[code]: message</b><pre>trace</pre>, with message and trace escaped.
func DebugFragment(ex *Exception) template.HTML {
	return template.HTML(fmt.Sprintf( //nolint:gosec // inputs are escaped
		"<b>Exception[%d]: %s</b><pre>%s</pre>",
		ex.Code, html.EscapeString(ex.Error()), html.EscapeString(ex.Trace),
	))
}
