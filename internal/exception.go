package internal

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"
)

// Exception is an error carrying an application code and the stack trace
// captured where it was created. Every error that reaches a controller's
// HandleError is converted to an Exception first.
type Exception struct {
	// Err is the underlying error, if any.
	Err error

	// Message is the human-readable message shown on debug error pages.
	Message string

	// Trace is the stack trace in text form.
	Trace string

	// Code is an application-defined code; 0 when not set.
	Code int

	// Status is the HTTP status used by the response; 0 means 500.
	Status int
}

func (e *Exception) Error() string {
	if e.Message == "" && e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *Exception) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status for the exception, defaulting to 500.
func (e *Exception) StatusCode() int {
	if e.Status == 0 {
		return http.StatusInternalServerError
	}
	return e.Status
}

// ExceptionOption configures an Exception.
type ExceptionOption func(*Exception)

// WithStatus sets the HTTP status of the exception.
func WithStatus(status int) ExceptionOption {
	return func(e *Exception) {
		e.Status = status
	}
}

// WithCause attaches the underlying error.
func WithCause(err error) ExceptionOption {
	return func(e *Exception) {
		e.Err = err
	}
}

// NewException creates an Exception and records the caller's stack.
//
//	return mvc.NewException(42, "boom")
func NewException(code int, message string, opts ...ExceptionOption) *Exception {
	e := &Exception{
		Code:    code,
		Message: message,
		Trace:   captureTrace(3),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WrapException wraps err into an Exception with the given code,
// recording the caller's stack. Returns nil for a nil err.
func WrapException(code int, err error) *Exception {
	if err == nil {
		return nil
	}
	return &Exception{
		Err:     err,
		Code:    code,
		Message: err.Error(),
		Trace:   captureTrace(3),
	}
}

// NewPanicException converts a recovered panic value into an Exception.
// stack is the goroutine stack taken inside the deferred recover.
func NewPanicException(value any, stack []byte) *Exception {
	e := &Exception{Message: fmt.Sprintf("panic: %v", value)}
	if err, ok := value.(error); ok {
		e.Err = err
	}
	if len(stack) > 0 {
		e.Trace = string(stack)
	} else {
		e.Trace = captureTrace(4)
	}
	return e
}

// AsException returns the Exception in err's chain. Other errors are
// wrapped in a new Exception whose trace is taken at this call.
// Returns nil for a nil err.
func AsException(err error) *Exception {
	if err == nil {
		return nil
	}
	var e *Exception
	if errors.As(err, &e) {
		return e
	}
	return &Exception{
		Err:     err,
		Message: err.Error(),
		Trace:   captureTrace(3),
	}
}

// IsException reports whether err's chain contains an Exception.
func IsException(err error) bool {
	var e *Exception
	return errors.As(err, &e)
}

const maxTraceDepth = 32

// captureTrace formats the stack starting skip frames above runtime.Callers.
func captureTrace(skip int) string {
	pcs := make([]uintptr, maxTraceDepth)
	n := runtime.Callers(skip, pcs)
	if n == 0 {
		return ""
	}
	frames := runtime.CallersFrames(pcs[:n])

	var b strings.Builder
	i := 0
	for {
		f, more := frames.Next()
		fmt.Fprintf(&b, "#%d %s(%d): %s\n", i, f.File, f.Line, f.Function)
		i++
		if !more {
			break
		}
	}
	return b.String()
}
