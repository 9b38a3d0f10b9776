package internal_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mvc/internal"
	"github.com/dmitrymomot/mvc/pkg/config"
	"github.com/dmitrymomot/mvc/pkg/view"
)

func themeFS() fstest.MapFS {
	return fstest.MapFS{
		"layouts/Template/default/Main.html": {Data: []byte(
			`<title>{{.meta.Title}}</title><main>{{.content}}</main>{{with .greeting}}<p>{{.}}</p>{{end}}`,
		)},
		"layouts/Template/default/Bare.html": {Data: []byte(`bare:{{.content}}`)},
	}
}

func newEngine(t *testing.T) *view.Engine {
	t.Helper()
	e := view.NewEngine(themeFS())
	t.Cleanup(func() { _ = e.Close() })
	return e
}

func themeConfig(env string) *config.Store {
	s := config.FromMap(map[string]any{
		config.KeyThemeName:       "default",
		config.KeyThemeLayoutPath: "layouts",
		config.KeyMeta:            config.Meta{Title: "Site", Description: "Site description"},
	})
	if env != "" {
		s.Add(config.KeyEnvironment, env)
	}
	return s
}

func newTestBase(t *testing.T, r *http.Request, w http.ResponseWriter, cfg *config.Store) *internal.Base {
	t.Helper()
	e := newEngine(t)
	return internal.NewBase(internal.Route{Method: r.Method, Pattern: r.URL.Path},
		internal.WithBaseRequest(r),
		internal.WithBaseResponseWriter(w),
		internal.WithBaseConfig(cfg),
		internal.WithBaseViews(e),
		internal.WithBaseTranslator(internal.NewTranslator(internal.WithTranslatorEngine(e))),
	)
}

func ajaxRequest(method, target string) *http.Request {
	r := httptest.NewRequest(method, target, nil)
	r.Header.Set(internal.HeaderRequestedWith, "XMLHttpRequest")
	return r
}

func fragment(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, code int) {
	t.Helper()
	require.Equal(t, code, rec.Code, "body: %s", rec.Body.String())
}

func newBufferLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
