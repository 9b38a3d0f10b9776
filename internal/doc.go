// Package internal provides the core types and implementation for the mvc framework.
//
// This package is internal and should not be used directly. Import
// "github.com/dmitrymomot/mvc" instead, which re-exports the public API.
//
// # Core Types
//
//   - App: HTTP routing, middleware, health endpoints and graceful shutdown
//   - Controller: the RunBefore, Run, RunAfter lifecycle plus HandleError
//   - Base: per-request controller state (route, data, theme, config, response)
//   - Translator: turns errors into JSON or themed HTML responses
//   - Response: a format/engine pair with status, headers and content
//   - Exception: an error with an application code and a stack trace
//   - Context: request access for middleware and plain handlers
//
// # Request flow
//
// For every matched route the router clones the application config
// store, builds a Base around the request and calls the route's Factory.
// Dispatch then runs the lifecycle:
//
//	RunBefore -> Run -> RunAfter
//
// The first error (or panic) skips the remaining steps and goes to
// HandleError. The default HandleError asks the Translator for a
// response: AJAX requests (X-Requested-With set) get the trace as JSON,
// others get <layoutPath>/Template/<theme>/Main rendered with "content"
// and "meta" variables. Outside production "content" holds the
// exception message and trace.
//
// # Request-scoped config
//
// Controllers write page metadata with Base.SetMetas. Writes land in the
// per-request clone, so concurrent requests never observe each other.
package internal
