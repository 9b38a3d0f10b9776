package internal

// Handler declares routes on a router.
//
// Example:
//
//	type Pages struct{}
//
//	func (Pages) Routes(r mvc.Router) {
//	    r.GET("/", NewHome)
//	    r.GET("/posts/{slug}", NewPost)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the signature for plain route handlers and the unit
// middleware wraps. Controllers are adapted to it by the router.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
//
// Example:
//
//	func Maintenance(next mvc.HandlerFunc) mvc.HandlerFunc {
//	    return func(c mvc.Context) error {
//	        c.Config().Add("maintenance", true)
//	        return next(c)
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler handles errors that escaped a controller's HandleError,
// such as a failure to render the error page.
type ErrorHandler func(Context, error) error
