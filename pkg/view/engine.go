package view

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"

	"github.com/dmitrymomot/mvc/pkg/cache"
)

// DefaultExtension is appended to template paths that have no extension.
const DefaultExtension = ".html"

// Engine loads html/template files from a file system and caches the
// parsed result.
type Engine struct {
	fsys     fs.FS
	cache    *cache.Memory[*template.Template]
	funcs    template.FuncMap
	markdown goldmark.Markdown
	ext      string
	partials []string
	cacheTTL time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithExtension sets the file extension used to resolve template paths.
func WithExtension(ext string) Option {
	return func(e *Engine) {
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		e.ext = ext
	}
}

// WithFuncs adds template functions. They override the built-in ones.
func WithFuncs(funcs template.FuncMap) Option {
	return func(e *Engine) {
		for k, v := range funcs {
			e.funcs[k] = v
		}
	}
}

// WithPartials adds glob patterns parsed together with every template,
// e.g. "layouts/partials/*.html".
func WithPartials(patterns ...string) Option {
	return func(e *Engine) {
		e.partials = append(e.partials, patterns...)
	}
}

// WithCacheTTL sets how long parsed templates stay cached.
// Negative keeps them forever (default); a small positive value is handy
// during development.
func WithCacheTTL(d time.Duration) Option {
	return func(e *Engine) {
		e.cacheTTL = d
	}
}

// WithMarkdown replaces the goldmark instance used by the markdown func.
func WithMarkdown(md goldmark.Markdown) Option {
	return func(e *Engine) {
		if md != nil {
			e.markdown = md
		}
	}
}

// NewEngine creates an Engine reading templates from fsys.
//
// Built-in template functions:
//
//	{{ markdown .body }}   renders Markdown to HTML
//	{{ render .widget }}   renders a templ component in place
func NewEngine(fsys fs.FS, opts ...Option) *Engine {
	e := &Engine{
		fsys:     fsys,
		cache:    cache.NewMemory[*template.Template](cache.WithCleanupInterval(0)),
		markdown: goldmark.New(),
		ext:      DefaultExtension,
		cacheTTL: -1,
		funcs:    template.FuncMap{},
	}
	e.funcs["markdown"] = e.renderMarkdown
	e.funcs["render"] = renderComponent

	for _, opt := range opts {
		opt(e)
	}
	return e
}

// New returns an unrendered template for path. Path resolution and parsing
// happen on Render, so New never fails.
func (e *Engine) New(name string) *Template {
	return &Template{engine: e, path: name, vars: make(map[string]any)}
}

// Exists reports whether the file for path is present.
func (e *Engine) Exists(name string) bool {
	_, err := fs.Stat(e.fsys, e.resolve(name))
	return err == nil
}

// Purge drops every cached template.
func (e *Engine) Purge(ctx context.Context) error {
	return e.cache.Clear(ctx)
}

// Close releases the template cache.
func (e *Engine) Close() error {
	return e.cache.Close()
}

// resolve turns a template path into a clean fs.FS path with extension.
func (e *Engine) resolve(name string) string {
	p := strings.TrimPrefix(path.Clean("/"+name), "/")
	if path.Ext(p) == "" {
		p += e.ext
	}
	return p
}

func (e *Engine) lookup(ctx context.Context, name string) (*template.Template, error) {
	file := e.resolve(name)

	return cache.GetOrSet(ctx, e.cache, file, func(context.Context) (*template.Template, time.Duration, error) {
		t, err := e.parse(file)
		return t, e.cacheTTL, err
	})
}

func (e *Engine) parse(file string) (*template.Template, error) {
	src, err := fs.ReadFile(e.fsys, file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, file)
		}
		return nil, errors.Join(ErrTemplateNotFound, err)
	}

	t, err := template.New(path.Base(file)).Funcs(e.funcs).Parse(string(src))
	if err != nil {
		return nil, errors.Join(ErrTemplateParse, err)
	}

	for _, pattern := range e.partials {
		matches, err := fs.Glob(e.fsys, pattern)
		if err != nil {
			return nil, errors.Join(ErrTemplateParse, err)
		}
		if len(matches) == 0 {
			continue
		}
		if t, err = t.ParseFS(e.fsys, matches...); err != nil {
			return nil, errors.Join(ErrTemplateParse, err)
		}
	}
	return t, nil
}

func (e *Engine) renderMarkdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := e.markdown.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil //nolint:gosec // goldmark escapes raw HTML by default
}

func renderComponent(c templ.Component) (template.HTML, error) {
	if c == nil {
		return "", nil
	}
	return templ.ToGoHTML(context.Background(), c)
}
