package internal

import (
	"context"
	"net/http"
	"runtime/debug"
)

// Controller is a request handler with a three-step lifecycle.
// Embed *Base to get default RunBefore, RunAfter, and HandleError;
// implement Run with the action itself.
type Controller interface {
	// RunBefore prepares the controller (theme resolution by default).
	RunBefore(ctx context.Context) error

	// Run is the action.
	Run(ctx context.Context) error

	// RunAfter runs only after a successful action.
	RunAfter(ctx context.Context) error

	// HandleError writes the response for an error raised by any step.
	// It returns only failures to send that response.
	HandleError(ctx context.Context, err error) error
}

// Factory builds a controller for one request around a prepared Base.
//
//	func NewPage(b *mvc.Base) mvc.Controller { return &Page{Base: b} }
type Factory func(b *Base) Controller

// Execute runs RunBefore, Run and RunAfter in order, stopping at the first
// error. A panic in any step is returned as an Exception.
func Execute(ctx context.Context, c Controller) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = NewPanicException(r, debug.Stack())
		}
	}()

	if err = c.RunBefore(ctx); err != nil {
		return err
	}
	if err = c.Run(ctx); err != nil {
		return err
	}
	return c.RunAfter(ctx)
}

// Dispatch executes the lifecycle and routes any error to the
// controller's HandleError. The returned error is non-nil only when the
// error response itself could not be produced.
func Dispatch(ctx context.Context, c Controller) (err error) {
	runErr := Execute(ctx, c)
	if runErr == nil {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = NewPanicException(r, debug.Stack())
		}
	}()
	return c.HandleError(ctx, runErr)
}

// StatusFactory returns a Factory whose controller fails with an
// Exception carrying status, so the response is the themed error page
// (or JSON for AJAX) with that status.
//
//	mvc.WithNotFound(mvc.StatusFactory(http.StatusNotFound))
func StatusFactory(status int) Factory {
	return func(b *Base) Controller {
		return &statusController{Base: b, status: status}
	}
}

type statusController struct {
	*Base
	status int
}

// RunBefore ignores theme resolution errors; the translator falls back
// to empty theme keys on its own.
func (s *statusController) RunBefore(ctx context.Context) error {
	_ = s.Base.RunBefore(ctx)
	return nil
}

func (s *statusController) Run(context.Context) error {
	return NewException(s.status, http.StatusText(s.status), WithStatus(s.status))
}
