package inertia

import (
	"cmp"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/go-json-experiment/json"
	"go.inout.gg/foundations/debug"

	"go.inout.gg/inertia/v2/internal/inertiabase"
	"go.inout.gg/inertia/v2/internal/inertiaheader"
	"go.inout.gg/inertia/v2/internal/inertiaredirect"
)

// ErrRootViewNotConfigured is returned when a full page load is rendered
// by an engine without a root view provider.
var ErrRootViewNotConfigured = errors.New("inertia: root view provider is not configured")

// Page represents an Inertia.js page that is sent to the client.
type Page = inertiabase.Page

// Inertia is a request-scoped protocol engine.
//
// It builds the page object for the current request and turns it into
// either a JSON response (Inertia requests) or a full HTML document.
// Inertia is not safe for concurrent use; create one per request with
// a Factory.
type Inertia struct {
	req                *http.Request
	rootView           RootViewProvider
	jsonMarshalOptions []json.Options
	page               Page
	shared             Props
	concurrency        int
}

func newInertia(req *http.Request, rootView RootViewProvider, config *Config) *Inertia {
	debug.Assert(req != nil, "expected req to be defined")

	//nolint:exhaustruct
	i := &Inertia{
		req:      req,
		rootView: rootView,
		page:     inertiabase.NewPage(),
	}

	if config != nil {
		i.jsonMarshalOptions = config.JSONMarshalOptions
		i.concurrency = config.Concurrency

		if config.Version != "" {
			i.page = i.page.WithVersion(config.Version)
		}
	}

	return i
}

// RenderOption configures a single Render call.
type RenderOption func(*renderOptions)

type renderOptions struct {
	url              string
	errorBag         string
	validationErrors []ValidationErrorer
	concurrency      int
	concurrencyIsSet bool
}

// WithURL overrides the page URL, which defaults to the request URI.
func WithURL(url string) RenderOption {
	return func(o *renderOptions) { o.url = url }
}

// WithValidationErrors adds validation errors to the page "errors" prop.
// Multiple calls accumulate errors.
//
// The errorBag parameter allows scoping errors to specific forms on the same page.
func WithValidationErrors(errorer ValidationErrorer, errorBag string) RenderOption {
	return func(o *renderOptions) {
		if errorer == nil {
			return
		}

		o.validationErrors = append(o.validationErrors, errorer)
		o.errorBag = errorBag
	}
}

// WithConcurrency sets the maximum number of top-level deferred props that
// are resolved concurrently. Zero or a negative value means sequential
// resolution.
func WithConcurrency(concurrency int) RenderOption {
	return func(o *renderOptions) {
		o.concurrency = max(concurrency, 0)
		o.concurrencyIsSet = true
	}
}

// Render builds the page for component and returns the response:
//   - JSON for Inertia requests (XHR navigation)
//   - HTML produced by the root view provider otherwise
//
// On partial reloads requested for component only the requested props
// are kept; on any other request props created with Optional (LazyProp)
// are left out. Deferred values that survive are invoked exactly once.
func (i *Inertia) Render(component string, props Proper, opts ...RenderOption) (*Response, error) {
	debug.Assert(component != "", "expected component to be defined")

	//nolint:exhaustruct
	o := renderOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	if !o.concurrencyIsSet {
		o.concurrency = i.concurrency
	}

	var rawProps Props
	if props != nil {
		rawProps = props.Props()
	}

	shared := i.shared

	var selected, sharedSelected Props

	if keys, ok := i.partialKeys(component); ok {
		d("Partial reload of %s, requested props: %v", component, keys)

		selected = rawProps.Pick(keys)
		sharedSelected = shared.Filter(func(p Prop) bool {
			return !isLazyProp(p.Value) || slices.Contains(keys, p.Key)
		})
	} else {
		// A partial reload of another component is served as a full reload.
		selected = rawProps.Filter(isNotLazyProp)
		sharedSelected = shared.Filter(isNotLazyProp)
	}

	merged := sharedSelected.Merge(selected)
	if len(o.validationErrors) > 0 {
		merged = merged.With(validationErrorsKey, makeValidationErrors(o.validationErrors, o.errorBag))
	}

	resolved, err := resolveProps(i.req.Context(), merged, o.concurrency)
	if err != nil {
		return nil, err
	}

	page := i.page.
		WithComponent(component).
		WithURL(cmp.Or(o.url, requestURI(i.req))).
		WithoutProps(i.page.Props().Keys()...).
		WithProps(resolved)

	i.page = page

	if isInertiaRequest(i.req) {
		d("Received inertia request, sending JSON response: %s", component)

		b, err := page.Marshal(i.jsonMarshalOptions...)
		if err != nil {
			return nil, fmt.Errorf("inertia: failed to encode page: %w", err)
		}

		return newResponse(http.StatusOK, inertiaheader.ContentTypeJSON, b), nil
	}

	if i.rootView == nil {
		return nil, ErrRootViewNotConfigured
	}

	html, err := i.rootView.RootView(i.req.Context(), &page)
	if err != nil {
		return nil, fmt.Errorf("inertia: failed to render root view: %w", err)
	}

	return newResponse(http.StatusOK, inertiaheader.ContentTypeHTML, []byte(html)), nil
}

// SetVersion sets the current asset version.
func (i *Inertia) SetVersion(version string) {
	i.page = i.page.WithVersion(version)
}

// Version returns the current asset version and whether it has been set.
func (i *Inertia) Version() (string, bool) { return i.page.Version() }

// Share sets a prop included in every subsequent Render call,
// regardless of the partial reload filters.
func (i *Inertia) Share(key string, value any) {
	i.shared = i.shared.With(key, value)
	i.page = i.page.WithProp(key, value)
}

// Page returns the current page: the last rendered one, with the props
// shared since.
func (i *Inertia) Page() Page { return i.page }

// Location redirects to an external URL outside of the Inertia app
// with a 302 Found status.
func (i *Inertia) Location(destination string) *Response {
	return i.LocationStatus(destination, http.StatusFound)
}

// LocationStatus redirects to an external URL outside of the Inertia app.
//
// For Inertia requests, it uses a 409 Conflict response with X-Inertia-Location header,
// so that the client performs a full page visit.
// For regular requests, it performs a standard HTTP redirect with statusCode.
func (i *Inertia) LocationStatus(destination string, statusCode int) *Response {
	if isInertiaRequest(i.req) {
		return newLocationResponse(destination)
	}

	resp := newResponse(statusCode, inertiaheader.ContentTypeHTML, nil)
	resp.Header.Set(inertiaheader.HeaderLocation, destination)

	return resp
}

// LocationFrom is like Location, but takes the destination from the Location
// header of resp. For non-Inertia requests resp is returned unchanged.
func (i *Inertia) LocationFrom(resp *Response) *Response {
	debug.Assert(resp != nil, "expected resp to be defined")

	if isInertiaRequest(i.req) {
		return newLocationResponse(resp.Header.Get(inertiaheader.HeaderLocation))
	}

	return resp
}

// Redirect redirects to a page of the Inertia app.
//
// GET requests are redirected with 302 Found, others with 303 See Other.
func (i *Inertia) Redirect(url string) *Response {
	return i.LocationStatus(url, inertiaredirect.StatusCode(i.req.Method))
}

func newLocationResponse(destination string) *Response {
	resp := newResponse(http.StatusConflict, inertiaheader.ContentTypeHTML, nil)
	resp.Header.Set(inertiaheader.HeaderXInertiaLocation, destination)

	return resp
}

// partialKeys returns the props requested by a partial reload of component.
func (i *Inertia) partialKeys(component string) ([]string, bool) {
	h := i.req.Header
	if !hasHeader(h, inertiaheader.HeaderXInertiaPartialData) {
		return nil, false
	}

	keys := extractHeaderValueList(strings.Join(h.Values(inertiaheader.HeaderXInertiaPartialData), ","))
	if len(keys) == 0 || h.Get(inertiaheader.HeaderXInertiaPartialComponent) != component {
		return nil, false
	}

	return keys, true
}

// isInertiaRequest checks if the request is made by Inertia.js.
func isInertiaRequest(req *http.Request) bool {
	return hasHeader(req.Header, inertiaheader.HeaderXInertia)
}

func hasHeader(h http.Header, key string) bool {
	return len(h.Values(key)) > 0
}

// requestURI returns the unmodified request-target of req,
// or the path and query of req.URL for absolute-form targets.
func requestURI(req *http.Request) string {
	if strings.HasPrefix(req.RequestURI, "/") {
		return req.RequestURI
	}

	return req.URL.RequestURI()
}

// requestURL returns the absolute URL of req.
func requestURL(req *http.Request) string {
	scheme := "http"
	if req.TLS != nil {
		scheme = "https"
	}

	if proto, _, _ := strings.Cut(req.Header.Get(inertiaheader.HeaderXForwardedProto), ","); proto != "" {
		scheme = strings.TrimSpace(proto)
	}

	return scheme + "://" + req.Host + requestURI(req)
}

// extractHeaderValueList extracts a list of values from a comma-separated header value.
// Values are trimmed and empty values are dropped.
func extractHeaderValueList(h string) []string {
	if h == "" {
		return nil
	}

	fields := strings.Split(h, ",")
	values := make([]string, 0, len(fields))

	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			values = append(values, f)
		}
	}

	return values
}
