package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
)

// Component is the interface for renderable templates.
// This is compatible with templ.Component and *view.Template.
type Component interface {
	Render(ctx context.Context, w io.Writer) error
}

// Format is the wire format of a response.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatHTML Format = "html"
)

// Engine is the rendering strategy of a response.
type Engine string

// Supported engines.
const (
	EngineAPI      Engine = "api"
	EngineTemplate Engine = "template"
)

// Response is a status code plus content, serialized according to its
// format and engine when sent.
type Response struct {
	content any
	header  http.Header
	format  Format
	engine  Engine
	code    int
}

// NewResponse creates a response for a format/engine pair.
// Valid pairs are (FormatJSON, EngineAPI) and (FormatHTML, EngineTemplate).
func NewResponse(format Format, engine Engine) (*Response, error) {
	switch {
	case format == FormatJSON && engine == EngineAPI,
		format == FormatHTML && engine == EngineTemplate:
	default:
		return nil, fmt.Errorf("%w: %s/%s", ErrUnsupportedResponse, format, engine)
	}
	return &Response{
		format: format,
		engine: engine,
		code:   http.StatusOK,
		header: make(http.Header),
	}, nil
}

// SetHTTPCode sets the status code.
func (r *Response) SetHTTPCode(code int) *Response {
	r.code = code
	return r
}

// SetContent sets the body.
//
// For the API engine, []byte and json.RawMessage are written verbatim and
// anything else is JSON-encoded. For the template engine, a Component is
// rendered, string and template.HTML are written verbatim.
func (r *Response) SetContent(content any) *Response {
	r.content = content
	return r
}

// SetHeader sets a response header sent along with the body.
func (r *Response) SetHeader(key, value string) *Response {
	r.header.Set(key, value)
	return r
}

func (r *Response) HTTPCode() int  { return r.code }
func (r *Response) Content() any   { return r.content }
func (r *Response) Format() Format { return r.format }
func (r *Response) Engine() Engine { return r.engine }

// Send serializes the content and writes the response to w.
// The body is built before anything is written, so a failed render
// leaves w untouched.
func (r *Response) Send(ctx context.Context, w http.ResponseWriter) error {
	if w == nil {
		return ErrNoResponseWriter
	}

	var (
		body        []byte
		contentType string
		err         error
	)
	switch r.engine {
	case EngineAPI:
		contentType = "application/json; charset=utf-8"
		body, err = r.encodeAPI()
	case EngineTemplate:
		contentType = "text/html; charset=utf-8"
		body, err = r.encodeTemplate(ctx)
	default:
		err = ErrUnsupportedResponse
	}
	if err != nil {
		return err
	}

	h := w.Header()
	for k, v := range r.header {
		h[k] = v
	}
	if h.Get("Content-Type") == "" {
		h.Set("Content-Type", contentType)
	}
	w.WriteHeader(r.code)
	if _, err := w.Write(body); err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	return nil
}

func (r *Response) encodeAPI() ([]byte, error) {
	switch c := r.content.(type) {
	case json.RawMessage:
		return c, nil
	case []byte:
		return c, nil
	}
	body, err := json.Marshal(r.content)
	if err != nil {
		return nil, errors.Join(ErrSendFailed, err)
	}
	return body, nil
}

func (r *Response) encodeTemplate(ctx context.Context) ([]byte, error) {
	switch c := r.content.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(c), nil
	case template.HTML:
		return []byte(c), nil
	case Component:
		var buf bytes.Buffer
		if err := c.Render(ctx, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("%w: template content of type %T", ErrUnsupportedResponse, r.content)
}
