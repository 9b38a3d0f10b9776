package internal

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Route describes the route a controller was dispatched for.
type Route struct {
	Params  map[string]string
	Method  string
	Pattern string
}

// Param returns the URL parameter name, or "" if the route has none.
func (r Route) Param(name string) string {
	return r.Params[name]
}

// routeFromRequest reads the matched route from chi's routing context.
func routeFromRequest(req *http.Request) Route {
	route := Route{Method: req.Method, Pattern: req.URL.Path}

	rctx := chi.RouteContext(req.Context())
	if rctx == nil {
		return route
	}
	if p := rctx.RoutePattern(); p != "" {
		route.Pattern = p
	}
	if n := len(rctx.URLParams.Keys); n > 0 {
		route.Params = make(map[string]string, n)
		for i, k := range rctx.URLParams.Keys {
			route.Params[k] = rctx.URLParams.Values[i]
		}
	}
	return route
}
