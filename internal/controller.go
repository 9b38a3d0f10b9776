package internal

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"path"

	"github.com/dmitrymomot/mvc/pkg/config"
	"github.com/dmitrymomot/mvc/pkg/logger"
	"github.com/dmitrymomot/mvc/pkg/sanitizer"
	"github.com/dmitrymomot/mvc/pkg/view"
)

// DefaultLayoutTemplate is the layout file name used when none is set.
const DefaultLayoutTemplate = "Main"

// Base carries the per-request state shared by all controllers: the
// route, the request, the data handed to the view, the resolved theme,
// and the request-scoped config store.
//
// Embed it in concrete controllers:
//
//	type Page struct {
//	    *mvc.Base
//	}
//
//	func (p *Page) Run(ctx context.Context) error {
//	    p.SetMetas(mvc.WithMetaTitle("About"), mvc.WithMetaDescription("Who we are"))
//	    p.AddData("team", team)
//	    return p.Render(ctx, http.StatusOK, views.About())
//	}
type Base struct {
	route      Route
	request    *http.Request
	ambient    AmbientRequestFunc
	writer     http.ResponseWriter
	config     *config.Store
	logger     *slog.Logger
	translator *Translator
	views      *view.Engine
	data       *DataCollection
	response   *Response

	modulePath          string
	themeName           string
	themeLayoutPath     string
	themeLayoutTemplate string
}

// BaseOption configures a Base.
type BaseOption func(*Base)

// WithBaseRequest sets the request. Without it Request builds one from the
// ambient source on first use.
func WithBaseRequest(r *http.Request) BaseOption {
	return func(b *Base) { b.request = r }
}

// WithBaseAmbientRequest replaces the source used when no request was given.
func WithBaseAmbientRequest(fn AmbientRequestFunc) BaseOption {
	return func(b *Base) {
		if fn != nil {
			b.ambient = fn
		}
	}
}

// WithBaseResponseWriter sets the writer responses are sent to.
func WithBaseResponseWriter(w http.ResponseWriter) BaseOption {
	return func(b *Base) { b.writer = w }
}

// WithBaseConfig sets the request-scoped config store.
func WithBaseConfig(s *config.Store) BaseOption {
	return func(b *Base) {
		if s != nil {
			b.config = s
		}
	}
}

// WithBaseLogger sets the controller logger.
func WithBaseLogger(l *slog.Logger) BaseOption {
	return func(b *Base) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithBaseTranslator sets the error translator used by HandleError.
func WithBaseTranslator(t *Translator) BaseOption {
	return func(b *Base) {
		if t != nil {
			b.translator = t
		}
	}
}

// WithBaseViews sets the template engine used by Render.
// Defaults to the translator's engine.
func WithBaseViews(e *view.Engine) BaseOption {
	return func(b *Base) {
		if e != nil {
			b.views = e
		}
	}
}

// NewBase creates the shared controller state for route.
func NewBase(route Route, opts ...BaseOption) *Base {
	b := &Base{
		route:               route,
		ambient:             AmbientRequest,
		config:              config.New(),
		logger:              logger.NewNope(),
		data:                NewDataCollection(),
		themeLayoutTemplate: DefaultLayoutTemplate,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Route returns the route the controller was created for.
func (b *Base) Route() Route { return b.route }

// Request returns the current request, building it from the ambient
// source on first call. Never nil.
func (b *Base) Request() *http.Request {
	if b.request == nil {
		b.request = b.ambient()
		if b.request == nil {
			b.request = AmbientRequest()
		}
	}
	return b.request
}

// ResponseWriter returns the writer responses are sent to; nil if none.
func (b *Base) ResponseWriter() http.ResponseWriter { return b.writer }

// Config returns the request-scoped config store.
func (b *Base) Config() *config.Store { return b.config }

// Logger returns the controller logger.
func (b *Base) Logger() *slog.Logger { return b.logger }

// Data returns the collection handed to the view.
func (b *Base) Data() *DataCollection { return b.data }

// AddData adds key to the view data, overwriting an earlier value.
func (b *Base) AddData(key string, value any) *Base {
	b.data.Add(key, value)
	return b
}

func (b *Base) ModulePath() string { return b.modulePath }

func (b *Base) SetModulePath(p string) *Base {
	b.modulePath = p
	return b
}

func (b *Base) ThemeName() string { return b.themeName }

// SetThemeName overrides the theme resolved by RunBefore.
func (b *Base) SetThemeName(name string) *Base {
	b.themeName = name
	return b
}

func (b *Base) ThemeLayoutPath() string { return b.themeLayoutPath }

// SetThemeLayoutPath overrides the layout root resolved by RunBefore.
func (b *Base) SetThemeLayoutPath(p string) *Base {
	b.themeLayoutPath = p
	return b
}

// ThemeLayoutTemplate returns the layout file name; "Main" unless changed.
func (b *Base) ThemeLayoutTemplate() string { return b.themeLayoutTemplate }

// SetThemeLayoutTemplate changes the layout file name.
// An empty name restores the default.
func (b *Base) SetThemeLayoutTemplate(name string) *Base {
	if name == "" {
		name = DefaultLayoutTemplate
	}
	b.themeLayoutTemplate = name
	return b
}

// LayoutPath returns <layoutPath>/Template/<theme>/<layout template>.
func (b *Base) LayoutPath() string {
	return path.Join(b.themeLayoutPath, "Template", b.themeName, b.themeLayoutTemplate)
}

// Response returns the response prepared by the action or HandleError.
func (b *Base) Response() *Response { return b.response }

// SetResponse sets the response sent by Send.
func (b *Base) SetResponse(r *Response) *Base {
	b.response = r
	return b
}

// Meta returns the page metadata from the request-scoped config.
func (b *Base) Meta() config.Meta {
	return config.GetMeta(b.config)
}

// MetaOption selects a metadata field for SetMetas to update.
type MetaOption func(*metaUpdate)

type metaUpdate struct {
	title       *string
	description *string
}

// WithMetaTitle prefixes title to the current page title.
func WithMetaTitle(title string) MetaOption {
	return func(u *metaUpdate) {
		u.title = &title
	}
}

// WithMetaDescription replaces the current page description.
func WithMetaDescription(description string) MetaOption {
	return func(u *metaUpdate) {
		u.description = &description
	}
}

// SetMetas updates the page metadata in the request-scoped config.
// A title becomes StripTags(title + " - " + current); a description
// replaces the current one after StripTags. Fields without an option
// are left unchanged, and the metadata is written back either way.
//
//	b.SetMetas(WithMetaTitle("About"), WithMetaDescription("Who we are"))
func (b *Base) SetMetas(opts ...MetaOption) *Base {
	var u metaUpdate
	for _, opt := range opts {
		opt(&u)
	}

	meta := b.Meta()
	if u.title != nil {
		meta.Title = sanitizer.StripTags(*u.title + " - " + meta.Title)
	}
	if u.description != nil {
		meta.Description = sanitizer.StripTags(*u.description)
	}
	b.config.Add(config.KeyMeta, meta)
	return b
}

// RunBefore resolves the theme name and layout path from config.
// It re-reads the store on every call.
func (b *Base) RunBefore(context.Context) error {
	name, err := config.String(b.config, config.KeyThemeName)
	if err != nil {
		return fmt.Errorf("resolve theme name: %w", err)
	}
	layoutPath, err := config.String(b.config, config.KeyThemeLayoutPath)
	if err != nil {
		return fmt.Errorf("resolve theme layout path: %w", err)
	}
	b.themeName = name
	b.themeLayoutPath = layoutPath
	return nil
}

// RunAfter does nothing by default.
func (b *Base) RunAfter(context.Context) error { return nil }

// HandleError translates err into a JSON or HTML error response and
// sends it. The returned error is the send failure, if any. When the
// response has already started, for example when RunAfter fails after
// the action rendered, the error is only logged.
func (b *Base) HandleError(ctx context.Context, err error) error {
	if w, ok := b.writer.(interface{ Written() bool }); ok && w.Written() {
		b.logger.ErrorContext(ctx, "error after response was sent",
			slog.String("route", b.route.Pattern),
			slog.String("error", err.Error()),
		)
		return nil
	}
	if b.translator == nil {
		b.translator = NewTranslator(WithTranslatorLogger(b.logger))
	}
	b.response = b.translator.Translate(b.Request(), b.config, err)
	return b.Send(ctx)
}

// Send writes the prepared response.
func (b *Base) Send(ctx context.Context) error {
	if b.response == nil {
		return fmt.Errorf("%w: nothing to send", ErrUnsupportedResponse)
	}
	return b.response.Send(ctx, b.writer)
}

// Render renders content inside the theme layout and sends it with code.
// The layout receives every view data entry plus "content" (the rendered
// component) and "meta". A nil content renders the layout alone.
func (b *Base) Render(ctx context.Context, code int, content Component) error {
	var inner template.HTML
	if content != nil {
		var buf bytes.Buffer
		if err := content.Render(ctx, &buf); err != nil {
			return err
		}
		inner = template.HTML(buf.String()) //nolint:gosec // output of a template engine
	}

	page := b.engine().New(b.LayoutPath()).
		SetVars(b.data.Map()).
		SetVar(VarContent, inner).
		SetVar(VarMeta, b.Meta())

	resp, err := NewResponse(FormatHTML, EngineTemplate)
	if err != nil {
		return err
	}
	b.response = resp.SetHTTPCode(code).SetContent(page)
	return b.Send(ctx)
}

// RenderPartial sends content without the theme layout.
func (b *Base) RenderPartial(ctx context.Context, code int, content Component) error {
	resp, err := NewResponse(FormatHTML, EngineTemplate)
	if err != nil {
		return err
	}
	b.response = resp.SetHTTPCode(code).SetContent(content)
	return b.Send(ctx)
}

// JSON sends v as a JSON response.
func (b *Base) JSON(ctx context.Context, code int, v any) error {
	resp, err := NewResponse(FormatJSON, EngineAPI)
	if err != nil {
		return err
	}
	b.response = resp.SetHTTPCode(code).SetContent(v)
	return b.Send(ctx)
}

func (b *Base) engine() *view.Engine {
	if b.views != nil {
		return b.views
	}
	if b.translator == nil {
		b.translator = NewTranslator(WithTranslatorLogger(b.logger))
	}
	return b.translator.Engine()
}
