package internal

import (
	"net/http"
	"net/http/cgi"
	"strings"
)

// HeaderRequestedWith is the header set by XMLHttpRequest-style clients.
const HeaderRequestedWith = "X-Requested-With"

// IsAJAX reports whether r was made by a script rather than by browser
// navigation: the X-Requested-With header is present and not blank.
func IsAJAX(r *http.Request) bool {
	if r == nil {
		return false
	}
	return strings.TrimSpace(r.Header.Get(HeaderRequestedWith)) != ""
}

// AmbientRequestFunc builds a request when a controller was constructed
// without one.
type AmbientRequestFunc func() *http.Request

// AmbientRequest reads the request from the CGI process environment.
// Outside a CGI process it returns a blank GET / request, so the result
// is never nil.
func AmbientRequest() *http.Request {
	if r, err := cgi.Request(); err == nil && r != nil {
		return r
	}
	r, _ := http.NewRequest(http.MethodGet, "/", nil)
	return r
}
