package inertia

import (
	"cmp"
	"fmt"
	"net/http"
	"slices"

	"go.inout.gg/inertia/v2/internal/inertiaheader"
)

var _ http.Handler = (*Response)(nil)

// Response is a response produced by the Inertia engine.
//
// A Response is not sent until it is written with Write or served
// as an http.Handler.
type Response struct {
	Header     http.Header
	Body       []byte
	StatusCode int
}

func newResponse(statusCode int, contentType string, body []byte) *Response {
	h := make(http.Header, 2)
	h.Set(inertiaheader.HeaderContentType, contentType)

	return &Response{StatusCode: statusCode, Header: h, Body: body}
}

// Write sends the response to w.
//
// The response headers replace the headers of the same name already set on w.
func (resp *Response) Write(w http.ResponseWriter) error {
	h := w.Header()
	for key, values := range resp.Header {
		h[key] = slices.Clone(values)
	}

	w.WriteHeader(cmp.Or(resp.StatusCode, http.StatusOK))

	if len(resp.Body) == 0 {
		return nil
	}

	if _, err := w.Write(resp.Body); err != nil {
		return fmt.Errorf("inertia: failed to write response: %w", err)
	}

	return nil
}

func (resp *Response) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	if err := resp.Write(w); err != nil {
		d("Failed to write response: %v", err)
	}
}
