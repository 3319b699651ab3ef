package inertia

import (
	"cmp"
	"context"
	"errors"
	"net/http"

	"go.inout.gg/foundations/debug"
	"go.inout.gg/foundations/must"

	"go.inout.gg/inertia/v2/internal/inertiaheader"
	"go.inout.gg/inertia/v2/internal/inertiaredirect"
)

var (
	ErrMissingFactory = errors.New("inertia: factory is required to create the middleware")
	ErrEngineNotFound = errors.New(
		"inertia: engine not found in request context - did you forget to use the middleware?",
	)
)

// ContextKey is the key under which the middleware stores the request's
// Inertia engine in the request context.
type ContextKey string

// DefaultContextKey is the default context key of the Inertia engine.
const DefaultContextKey ContextKey = "inertia"

// Factory creates request-scoped Inertia engines.
type Factory interface {
	// FromRequest creates an Inertia engine bound to r.
	FromRequest(r *http.Request) *Inertia
}

// FactoryFunc is a function adapter that implements the Factory interface.
type FactoryFunc func(*http.Request) *Inertia

func (fn FactoryFunc) FromRequest(r *http.Request) *Inertia { return fn(r) }

// MiddlewareConfig configures the behavior of the Inertia.js middleware.
type MiddlewareConfig struct {
	// ContextKey is the key under which the engine is stored in the request context.
	//
	// If empty, defaults to DefaultContextKey.
	ContextKey ContextKey
}

func (m *MiddlewareConfig) defaults() {
	m.ContextKey = cmp.Or(m.ContextKey, DefaultContextKey)

	debug.Assert(m.ContextKey != "", "ContextKey must be set")
}

// WithContextKey sets the context key the engine is stored under.
func WithContextKey(key ContextKey) func(*MiddlewareConfig) {
	return func(m *MiddlewareConfig) { m.ContextKey = key }
}

// NewMiddleware creates an HTTP middleware that enables Inertia.js protocol handling.
//
// For every request it creates an engine with factory and stores it in the
// request context (see FromContext). Responses to Inertia requests are
// post-processed:
//   - Vary: X-Inertia and X-Inertia: true headers are added;
//   - GET requests whose X-Inertia-Version doesn't match the engine version
//     are answered with 409 Conflict and X-Inertia-Location set to the request URL;
//   - 302 redirects of PUT/PATCH/DELETE requests are converted to 303;
//   - the X-Inertia header is removed from 409 responses carrying X-Inertia-Location.
//
// Responses to other requests are passed through untouched.
//
// It returns ErrMissingFactory if factory is nil.
func NewMiddleware(factory Factory, opts ...func(*MiddlewareConfig)) (func(http.Handler) http.Handler, error) {
	if factory == nil {
		return nil, ErrMissingFactory
	}

	if r, ok := factory.(*Renderer); ok && r == nil {
		return nil, ErrMissingFactory
	}

	//nolint:exhaustruct
	var config MiddlewareConfig
	for _, opt := range opts {
		opt(&config)
	}

	config.defaults()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			engine := factory.FromRequest(r)
			debug.Assert(engine != nil, "factory must create an engine")

			r = r.WithContext(context.WithValue(r.Context(), config.ContextKey, engine))

			if !isInertiaRequest(r) {
				next.ServeHTTP(w, r)
				return
			}

			rww := newResponseWriter(w)
			next.ServeHTTP(rww, r)

			h := w.Header()
			h.Add(inertiaheader.HeaderVary, inertiaheader.HeaderXInertia)
			h.Set(inertiaheader.HeaderXInertia, "true")

			if r.Method == http.MethodGet {
				clientVersion := r.Header.Get(inertiaheader.HeaderXInertiaVersion)
				serverVersion, _ := engine.Version()

				if clientVersion != serverVersion {
					d("Version mismatch (client: %q, server: %q), forcing a full reload", clientVersion, serverVersion)

					rww.replace(http.StatusConflict)
					h.Del(inertiaheader.HeaderContentType)
					h.Del(inertiaheader.HeaderContentLength)
					h.Set(inertiaheader.HeaderXInertiaLocation, requestURL(r))
				}
			}

			if inertiaredirect.SeeOther(r.Method, rww.statusCode) {
				rww.statusCode = http.StatusSeeOther
			}

			// https://inertiajs.com/redirects#external-redirects
			if rww.statusCode == http.StatusConflict && hasHeader(h, inertiaheader.HeaderXInertiaLocation) {
				h.Del(inertiaheader.HeaderXInertia)
			}

			if err := rww.flush(); err != nil {
				d("Failed to send response: %v", err)
			}
		})
	}, nil
}

// MustNewMiddleware is like NewMiddleware, but panics if an error occurs.
func MustNewMiddleware(factory Factory, opts ...func(*MiddlewareConfig)) func(http.Handler) http.Handler {
	return must.Must(NewMiddleware(factory, opts...))
}

// FromContext returns the Inertia engine stored by the middleware under
// DefaultContextKey.
func FromContext(ctx context.Context) (*Inertia, bool) {
	return FromContextKey(ctx, DefaultContextKey)
}

// FromContextKey returns the Inertia engine stored by the middleware under key.
func FromContextKey(ctx context.Context, key ContextKey) (*Inertia, bool) {
	engine, ok := ctx.Value(key).(*Inertia)
	return engine, ok && engine != nil
}

// Render sends an Inertia.js page response with the specified component and props.
// It automatically detects whether to send JSON (for Inertia requests) or HTML (for full page loads).
//
// This function requires the Inertia middleware to be installed in the request chain.
// Returns ErrEngineNotFound if the middleware is not found, or an error if rendering fails.
func Render(w http.ResponseWriter, r *http.Request, component string, props Proper, opts ...RenderOption) error {
	engine, ok := FromContext(r.Context())
	if !ok {
		return ErrEngineNotFound
	}

	resp, err := engine.Render(component, props, opts...)
	if err != nil {
		return err
	}

	return resp.Write(w)
}

// MustRender is like Render, but panics if an error occurs.
func MustRender(w http.ResponseWriter, r *http.Request, component string, props Proper, opts ...RenderOption) {
	must.Must1(Render(w, r, component, props, opts...))
}

// Share sets a prop on the request's engine, see Inertia.Share.
//
// Returns ErrEngineNotFound if the middleware is not found.
func Share(r *http.Request, key string, value any) error {
	engine, ok := FromContext(r.Context())
	if !ok {
		return ErrEngineNotFound
	}

	engine.Share(key, value)

	return nil
}

// Location redirects to an external URL outside of the Inertia app.
//
// For Inertia requests, it uses a 409 Conflict response with X-Inertia-Location header.
// For regular requests, it performs a standard HTTP redirect.
func Location(w http.ResponseWriter, r *http.Request, url string) {
	engine, ok := FromContext(r.Context())
	if !ok {
		engine = newInertia(r, nil, nil)
	}

	engine.Location(url).ServeHTTP(w, r)
}

// Redirect sends a redirect response to the Inertia app page.
func Redirect(w http.ResponseWriter, r *http.Request, url string) {
	inertiaredirect.Redirect(w, r, url)
}
