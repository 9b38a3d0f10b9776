// Package middlewares provides HTTP middleware for mvc applications.
//
// # Request ID
//
// RequestID tags each request with an ID taken from X-Request-ID or
// X-Correlation-ID, or a generated UUID. Pair it with RequestIDExtractor
// so every log record carries the ID:
//
//	app := mvc.New(
//	    mvc.WithLogger("site", middlewares.RequestIDExtractor()),
//	    mvc.WithMiddleware(middlewares.RequestID()),
//	)
//
// # Recover
//
// Recover converts panics raised outside controllers (in other
// middleware or plain handlers) into an *mvc.Exception carrying the
// goroutine stack. The error then renders through the themed error page,
// or as JSON for AJAX requests. Controllers need no middleware for this:
// the dispatcher recovers their panics.
//
//	mvc.WithMiddleware(middlewares.Recover(middlewares.WithRecoverStackSize(8192)))
//
// # Timeout
//
// Timeout bounds handling time. On expiry it returns an exception with
// status 503 whose cause is a *TimeoutError:
//
//	mvc.WithMiddleware(middlewares.Timeout(10 * time.Second))
//
// The handler goroutine keeps running after a timeout; long operations
// should select on GetTimeoutContext(c).Done().
package middlewares
