// inertiaframe implements an opinionated framework around Go's HTTP and Inertia
// library, abstracting out protocol-level details and providing a simple
// message-based API.
package inertiaframe

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"

	"github.com/go-json-experiment/json"
	"github.com/go-playground/form/v4"
	"go.inout.gg/foundations/debug"
	"go.inout.gg/foundations/http/httperror"
	"go.inout.gg/foundations/must"

	"go.inout.gg/inertia/v2"
	"go.inout.gg/inertia/v2/internal/inertiaheader"
	"go.inout.gg/inertia/v2/internal/inertiaredirect"
)

var d = debug.Debuglog("inertiaframe") //nolint:gochecknoglobals

var DefaultFormDecoder = form.NewDecoder() //nolint:gochecknoglobals

var ErrEmptyResponse = errors.New("inertiaframe: empty response")

var (
	_ RawResponseWriter = (*redirectMessage)(nil)
	_ RawResponseWriter = (*redirectBackMessage)(nil)
	_ RawResponseWriter = (*externalRedirectMessage)(nil)
)

type kCtx struct{}

var kCtxKey = kCtx{} //nolint:gochecknoglobals

// WithProps sets the props on the request context and returns
// the updated request.
//
// WithProps can be used to gather props in multiple places, e.g., in middleware.
//
// Any overlapping props between the shared context and the response props
// will be replaced with the response props.
func WithProps(r *http.Request, props inertia.Proper) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), kCtxKey, props))
}

// RedirectBack redirects the user back to the previous page.
//
// The previous page is determined from the Referer header and
// falls back to the flashed referer, then to "/".
func RedirectBack(w http.ResponseWriter, r *http.Request) {
	referer := r.Header.Get(inertiaheader.HeaderReferer)
	if referer == "" {
		f, err := flashFromRequest(r)
		if err != nil || f.Referer == "" {
			d("no referer to redirect back to, using default '/'")

			referer = "/"
		} else {
			referer = f.Referer
		}
	}

	d("redirecting back to %s", referer)

	inertiaredirect.Redirect(w, r, referer)
}

// DefaultValidationErrorHandler is a default error handler for validation errors.
//
// It flashes the validation errors to a cookie and redirects back
// to the previous page, where they are rendered as the "errors" prop.
func DefaultValidationErrorHandler(w http.ResponseWriter, r *http.Request, errorer inertia.ValidationErrorer) {
	f := newFlash(errorer, inertia.ErrorBagFromRequest(r), r.Header.Get(inertiaheader.HeaderReferer))
	must.Must1(f.save(w))

	RedirectBack(w, r)
}

//nolint:gochecknoglobals
var DefaultErrorHandler httperror.ErrorHandler = httperror.ErrorHandlerFunc(
	func(w http.ResponseWriter, r *http.Request, err error) {
		var errorer inertia.ValidationErrorer
		if errors.As(err, &errorer) {
			DefaultValidationErrorHandler(w, r, errorer)
			return
		}

		httperror.DefaultErrorHandler(w, r, err)
	},
)

const (
	mediaTypeJSON      = "application/json"
	mediaTypeForm      = "application/x-www-form-urlencoded"
	mediaTypeMultipart = "multipart/form-data"
)

// Request is a request sent by a client.
type Request[M any] struct {
	// Message is a decoded message sent by a client.
	//
	// Message can implement RawRequestExtractor to intercept request data extraction.
	Message *M
}

func newRequest[M any](m *M) *Request[M] {
	return &Request[M]{Message: m}
}

// Response is a response sent by a server to a client.
//
// Use NewResponse to create a new response.
type Response struct {
	m           Message
	url         string
	concurrency int
}

// ResponseConfig is a configuration for inertia response.
type ResponseConfig struct {
	// URL overrides the page URL, which defaults to the request URI.
	URL string

	// Concurrency determines the maximum number of concurrent resolutions of
	// deferred props that can be made during response resolution.
	//
	// Zero means the renderer default.
	Concurrency int
}

// NewResponse creates a new inertia response.
//
// The msg can be a struct with props tagged with `inertia:"key"`,
// a set of props, or a struct implementing RawResponseWriter for
// custom response handling.
//
// An optional config can be passed to customize the response behavior.
// If config is nil, default values will be used.
func NewResponse(msg Message, config *ResponseConfig) *Response {
	if config == nil {
		config = &ResponseConfig{URL: "", Concurrency: 0}
	}

	return &Response{m: msg, url: config.URL, concurrency: config.Concurrency}
}

type externalRedirectMessage struct{ url string }

func (m *externalRedirectMessage) Component() string { return "" }

func (m *externalRedirectMessage) Write(w http.ResponseWriter, r *http.Request) error {
	inertia.Location(w, r, m.url)
	return nil
}

// NewExternalRedirectResponse creates a new response that redirects the client to an
// external URL.
//
// External URL is any URL that is not powered by Inertia.js.
func NewExternalRedirectResponse(url string) *Response {
	return NewResponse(&externalRedirectMessage{url: url}, nil)
}

type redirectBackMessage struct{}

func (m *redirectBackMessage) Component() string { return "" }

func (m *redirectBackMessage) Write(w http.ResponseWriter, r *http.Request) error {
	RedirectBack(w, r)
	return nil
}

// NewRedirectBackResponse creates a new response that redirects the client
// back to the previous page.
func NewRedirectBackResponse() *Response {
	return NewResponse(&redirectBackMessage{}, nil)
}

type redirectMessage struct{ url string }

func (m *redirectMessage) Component() string { return "" }

func (m *redirectMessage) Write(w http.ResponseWriter, r *http.Request) error {
	inertia.Redirect(w, r, m.url)
	return nil
}

// NewRedirectResponse creates a new response that redirects the client to the
// specified URL.
func NewRedirectResponse(url string) *Response {
	return NewResponse(&redirectMessage{url: url}, nil)
}

// Message is used to send a message to the client. It can be
// used to guide the client to render a component or redirect to a
// specific URL.
//
// If the Message implements a RawResponseWriter, the default
// behavior is prevented and the writer is used instead to
// write the response data.
type Message interface {
	// Component returns the component name to be rendered.
	//
	// Component must return a non-empty string, unless the message
	// implements RawResponseWriter.
	Component() string
}

// RawRequestExtractor allows to extract data from the raw http.Request.
// If a request message implements RawRequestExtractor, the default
// behavior is prevented and the extractor is used instead to
// extract the request data.
type RawRequestExtractor interface {
	// Extract extracts data from the raw http.Request.
	Extract(*http.Request) error
}

// RawResponseWriter allows to write data to the http.ResponseWriter.
// If a response message implements RawResponseWriter, the default
// behavior is prevented and the writer is used instead to
// write the response data.
type RawResponseWriter interface {
	Write(http.ResponseWriter, *http.Request) error
}

// Meta is the metadata of an endpoint.
type Meta struct {
	// HTTP method of the endpoint.
	Method string

	// HTTP path of the endpoint. It supports the same path pattern as
	// the http.ServeMux.
	Path string
}

// Validator validates decoded request messages.
//
// Errors implementing inertia.ValidationErrorer are flashed to the client.
type Validator interface {
	Validate(any) error
}

// ValidatorFunc is a function adapter that implements Validator.
type ValidatorFunc func(any) error

func (fn ValidatorFunc) Validate(v any) error { return fn(v) }

type Endpoint[R any] interface {
	// Execute executes the endpoint for the given request.
	//
	// If the returned error can automatically be converted to an Inertia
	// error, it will be converted and passed down to the client.
	Execute(context.Context, *Request[R]) (*Response, error)

	// Meta returns the metadata of the endpoint. It is used to configure
	// the endpoint's behavior when mounted on a given http.ServeMux.
	Meta() *Meta
}

// Mux is a universal interface for routing HTTP requests.
type Mux interface {
	// Handle handles the given HTTP request at the specified path.
	//
	// The pattern is a string following the http.ServeMux format:
	// "<http-method> <path>".
	Handle(pattern string, h http.Handler)
}

type MountOpts struct {
	Middleware           func(http.Handler) http.Handler
	Validator            Validator
	ErrorHandler         httperror.ErrorHandler
	FormDecoder          *form.Decoder
	JSONUnmarshalOptions []json.Options
}

// Mount mounts the endpoint on the given mux.
//
// Endpoint must specify the HTTP method and path via Endpoint.Meta().
// The mounted endpoint automatically handles requests with JSON and form
// data.
//
// The message M is validated using the validator specified in the MountOpts.
// Validation errors are automatically handled and passed to the client
// according to Inertia protocol.
func Mount[M any](mux Mux, e Endpoint[M], opts *MountOpts) {
	if opts == nil {
		//nolint:exhaustruct
		opts = &MountOpts{}
	}

	if opts.ErrorHandler == nil {
		opts.ErrorHandler = DefaultErrorHandler
	}

	if opts.FormDecoder == nil {
		opts.FormDecoder = DefaultFormDecoder
	}

	debug.Assert(e != nil, "Endpoint must not be nil")

	m := e.Meta()

	debug.Assert(m.Method != "", "Endpoint must specify the HTTP method")
	debug.Assert(m.Path != "", "Endpoint must specify the HTTP path")

	pattern := fmt.Sprintf("%s %s", m.Method, m.Path)

	d("Mounting endpoint on pattern: %s", pattern)

	h := newHandler(e, opts.ErrorHandler, opts.Validator, opts.FormDecoder, opts.JSONUnmarshalOptions)
	if opts.Middleware != nil {
		h = opts.Middleware(h)
	}

	mux.Handle(pattern, h)
}

// newHandler creates a new http.Handler for the given endpoint.
func newHandler[M any](
	endpoint Endpoint[M],
	errorHandler httperror.ErrorHandler,
	validator Validator,
	formDecoder *form.Decoder,
	jsonUnmarshalOptions []json.Options,
) http.Handler {
	handleError := httperror.WithErrorHandler(errorHandler)

	return handleError(httperror.HandlerFunc(func(w http.ResponseWriter, r *http.Request) error {
		msg := new(M)
		ctx := r.Context()

		if err := decode(r, msg, formDecoder, jsonUnmarshalOptions); err != nil {
			return err
		}

		if validator != nil {
			if err := validator.Validate(msg); err != nil {
				d("failed to validate request")

				return fmt.Errorf("inertiaframe: failed to validate request: %w", err)
			}
		}

		resp, err := endpoint.Execute(ctx, newRequest(msg))
		if err != nil {
			return fmt.Errorf("inertiaframe: failed to execute: %w", err)
		}

		if resp == nil || resp.m == nil {
			d("received empty response")

			return ErrEmptyResponse
		}

		if writer, ok := resp.m.(RawResponseWriter); ok {
			if err := writer.Write(w, r); err != nil {
				return fmt.Errorf("inertiaframe: failed to write response: %w", err)
			}

			return nil
		}

		var props inertia.Props
		if proper, ok := r.Context().Value(kCtxKey).(inertia.Proper); ok {
			d("has shared props")

			props = proper.Props()
		}

		extractedProps, err := extractProps(resp.m)
		if err != nil {
			return fmt.Errorf("inertiaframe: failed to extract props: %w", err)
		}

		if extractedProps.Len() > 0 {
			d("has response props")

			props = props.Merge(extractedProps)
		}

		var opts []inertia.RenderOption
		if resp.url != "" {
			opts = append(opts, inertia.WithURL(resp.url))
		}

		if resp.concurrency > 0 {
			opts = append(opts, inertia.WithConcurrency(resp.concurrency))
		}

		if f, err := flashFromRequest(r); err == nil {
			if errs, bag := f.take(); errs != nil {
				opts = append(opts, inertia.WithValidationErrors(errs, bag))
				clearFlash(w, r)
			}
		}

		componentName := resp.m.Component()
		debug.Assert(componentName != "", "component must not be empty, when using non RawResponseWriter")

		if err := inertia.Render(w, r, componentName, props, opts...); err != nil {
			return fmt.Errorf("inertiaframe: failed to render: %w", err)
		}

		return nil
	}))
}

// decode decodes the request body into msg.
func decode(r *http.Request, msg any, formDecoder *form.Decoder, jsonUnmarshalOptions []json.Options) error {
	if extract, ok := msg.(RawRequestExtractor); ok {
		if err := extract.Extract(r); err != nil {
			return fmt.Errorf("inertiaframe: failed to extract request data: %w", err)
		}

		return nil
	}

	if r.Method == http.MethodGet {
		return nil
	}

	mediaType, _, err := mime.ParseMediaType(r.Header.Get(inertiaheader.HeaderContentType))
	if err != nil {
		return fmt.Errorf("inertiaframe: failed to parse Content-Type header: %w", err)
	}

	// Inertia sends either JSON or form data.
	switch mediaType {
	case mediaTypeJSON:
		d("received JSON request")

		if err := json.UnmarshalRead(r.Body, msg, jsonUnmarshalOptions...); err != nil {
			return fmt.Errorf("inertiaframe: failed to decode request: %w", err)
		}
	case mediaTypeForm, mediaTypeMultipart:
		d("received form request")

		if mediaType == mediaTypeMultipart {
			if err := r.ParseMultipartForm(32 << 20); err != nil {
				return fmt.Errorf("inertiaframe: failed to parse multipart form data: %w", err)
			}
		} else if err := r.ParseForm(); err != nil {
			return fmt.Errorf("inertiaframe: failed to parse form data: %w", err)
		}

		if err := formDecoder.Decode(msg, r.Form); err != nil {
			return fmt.Errorf("inertiaframe: failed to decode form data: %w", err)
		}
	}

	return nil
}

// extractProps extracts props from the given message.
//
// If the message implements the inertia.Proper interface,
// it returns the props from the message.
// Otherwise, it attempts to parse the message as a struct and
// returns the props from the struct.
func extractProps(msg any) (inertia.Props, error) {
	proper, ok := msg.(inertia.Proper)
	if ok {
		return proper.Props(), nil
	}

	props, err := inertia.ParseStruct(msg)
	if err != nil {
		return nil, fmt.Errorf("inertiaframe: failed to parse props: %w", err)
	}

	return props, nil
}
