package internal

import "errors"

// Sentinel errors for the controller layer.
var (
	// ErrUnsupportedResponse is returned for an invalid format/engine pair
	// or content the engine cannot serialize.
	ErrUnsupportedResponse = errors.New("mvc: unsupported response")

	// ErrNoResponseWriter is returned when a response is sent without a writer.
	ErrNoResponseWriter = errors.New("mvc: no response writer")

	// ErrSendFailed is returned when the response body cannot be written.
	ErrSendFailed = errors.New("mvc: send response failed")

	// ErrNoController is returned when a route factory yields no controller.
	ErrNoController = errors.New("mvc: factory returned nil controller")
)
