package internal

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResponseWriter_WriteHeader(t *testing.T) {
	w := httptest.NewRecorder()
	rw := NewResponseWriter(w)

	if rw.Written() {
		t.Fatal("Written() = true before any write")
	}

	rw.WriteHeader(http.StatusInternalServerError)
	rw.WriteHeader(http.StatusOK) // ignored

	if rw.Status() != http.StatusInternalServerError {
		t.Errorf("Status() = %d, want %d", rw.Status(), http.StatusInternalServerError)
	}
	if w.Code != http.StatusInternalServerError {
		t.Errorf("underlying status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	if !rw.Written() {
		t.Error("Written() = false, want true")
	}
}

func TestResponseWriter_Write(t *testing.T) {
	w := httptest.NewRecorder()
	rw := NewResponseWriter(w)

	n, err := rw.Write([]byte("hello world"))
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if n != 11 || rw.Size() != 11 {
		t.Errorf("Write() = %d, Size() = %d, want 11", n, rw.Size())
	}
	if w.Code != http.StatusOK {
		t.Errorf("implicit status = %d, want 200", w.Code)
	}
	if w.Body.String() != "hello world" {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestResponseWriter_OnBeforeWrite(t *testing.T) {
	w := httptest.NewRecorder()
	rw := NewResponseWriter(w)

	var order []int
	rw.OnBeforeWrite(func() { order = append(order, 1) })
	rw.OnBeforeWrite(func() { order = append(order, 2) })

	rw.Write([]byte("a"))
	rw.WriteHeader(http.StatusTeapot)
	rw.Write([]byte("b"))

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("hooks ran as %v, want [1 2]", order)
	}
}

func TestResponseWriter_Wrappers(t *testing.T) {
	w := httptest.NewRecorder()
	rw := NewResponseWriter(w)

	rw.Header().Set("X-Test", "value")
	if got := w.Header().Get("X-Test"); got != "value" {
		t.Errorf("Header X-Test = %q", got)
	}

	rw.Flush()
	if !w.Flushed {
		t.Error("underlying flusher not called")
	}

	if rw.Unwrap() != w {
		t.Error("Unwrap() did not return underlying writer")
	}

	if _, _, err := rw.Hijack(); err != http.ErrNotSupported {
		t.Errorf("Hijack() error = %v, want ErrNotSupported", err)
	}
}
