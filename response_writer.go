package inertia

import (
	"bytes"
	"fmt"
	"net/http"
)

var (
	_ http.ResponseWriter = (*responseWriter)(nil)
	_ http.Flusher        = (*responseWriter)(nil)
)

// responseWriter buffers the status code and body written by a handler,
// so that the middleware can rewrite the response before it is sent.
//
// Headers are written directly to the underlying http.ResponseWriter.
type responseWriter struct {
	w           http.ResponseWriter
	buf         bytes.Buffer
	statusCode  int
	wroteHeader bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	//nolint:exhaustruct
	return &responseWriter{w: w, statusCode: http.StatusOK}
}

func (rw *responseWriter) Header() http.Header { return rw.w.Header() }

func (rw *responseWriter) WriteHeader(statusCode int) {
	if rw.wroteHeader {
		return
	}

	rw.wroteHeader = true
	rw.statusCode = statusCode
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.wroteHeader {
		rw.WriteHeader(http.StatusOK)
	}

	return rw.buf.Write(b) //nolint:wrapcheck
}

// Flush is a no-op: the response is held until the middleware sends it.
//
// responseWriter has no Unwrap method: http.ResponseController must not
// reach the underlying writer.
func (rw *responseWriter) Flush() {}

// replace discards the buffered body and sets the status code.
func (rw *responseWriter) replace(statusCode int) {
	rw.buf.Reset()
	rw.wroteHeader = true
	rw.statusCode = statusCode
}

// flush sends the buffered response.
func (rw *responseWriter) flush() error {
	rw.w.WriteHeader(rw.statusCode)

	if rw.buf.Len() == 0 {
		return nil
	}

	if _, err := rw.w.Write(rw.buf.Bytes()); err != nil {
		return fmt.Errorf("inertia: failed to flush response: %w", err)
	}

	return nil
}
