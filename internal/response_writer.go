package internal

import (
	"bufio"
	"net"
	"net/http"
	"sync"
)

// ResponseWriter wraps http.ResponseWriter to track whether the response
// has started and to run hooks right before the first byte goes out.
// The dispatcher uses Written to decide whether an error can still be
// turned into an error page.
type ResponseWriter struct {
	http.ResponseWriter
	beforeWrite []func()
	status      int
	size        int64
	mu          sync.Mutex
	written     bool
}

// NewResponseWriter wraps w.
func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{ResponseWriter: w, status: http.StatusOK}
}

// OnBeforeWrite registers fn to run once, before the header is written.
// Hooks run in registration order.
func (w *ResponseWriter) OnBeforeWrite(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.beforeWrite = append(w.beforeWrite, fn)
}

// start marks the response as written and returns pending hooks.
// Returns false if the response had already started.
func (w *ResponseWriter) start(code int) ([]func(), bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.written {
		return nil, false
	}
	w.written = true
	w.status = code
	hooks := w.beforeWrite
	w.beforeWrite = nil
	return hooks, true
}

// WriteHeader sends the status code. Later calls are ignored.
func (w *ResponseWriter) WriteHeader(code int) {
	hooks, ok := w.start(code)
	if !ok {
		return
	}
	for _, fn := range hooks {
		fn()
	}
	w.ResponseWriter.WriteHeader(code)
}

// Write writes body bytes, sending an implicit 200 header first.
func (w *ResponseWriter) Write(b []byte) (int, error) {
	if hooks, ok := w.start(http.StatusOK); ok {
		for _, fn := range hooks {
			fn()
		}
		w.ResponseWriter.WriteHeader(http.StatusOK)
	}

	n, err := w.ResponseWriter.Write(b)
	w.mu.Lock()
	w.size += int64(n)
	w.mu.Unlock()
	return n, err
}

// Status returns the status code sent, or 200 before anything was written.
func (w *ResponseWriter) Status() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

// Size returns the number of body bytes written.
func (w *ResponseWriter) Size() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.size
}

// Written reports whether the header has been sent.
func (w *ResponseWriter) Written() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.written
}

// Flush implements http.Flusher.
func (w *ResponseWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Hijack implements http.Hijacker.
func (w *ResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if h, ok := w.ResponseWriter.(http.Hijacker); ok {
		return h.Hijack()
	}
	return nil, nil, http.ErrNotSupported
}

// Unwrap returns the underlying writer for http.ResponseController.
func (w *ResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
