package middlewares_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/dmitrymomot/mvc/internal"
)

type routes func(r internal.Router)

func (f routes) Routes(r internal.Router) { f(r) }

// newApp mounts h at GET /, wrapped in mw.
func newApp(h internal.HandlerFunc, mw []internal.Middleware, opts ...internal.Option) *internal.App {
	opts = append(opts,
		internal.WithAPITrace(false),
		internal.WithMiddleware(mw...),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.HandleFunc(http.MethodGet, "/", h)
		})),
	)
	return internal.New(opts...)
}

func do(app http.Handler, header ...string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(internal.HeaderRequestedWith, "XMLHttpRequest")
	for i := 0; i+1 < len(header); i += 2 {
		r.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, r)
	return rec
}
