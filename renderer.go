package inertia

import (
	"cmp"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"

	"github.com/go-json-experiment/json"
	"go.inout.gg/foundations/debug"
	"go.inout.gg/foundations/must"
)

var _ Factory = (*Renderer)(nil)

// DefaultConcurrency is the default concurrency level for resolution of
// deferred props. Zero means props are resolved sequentially.
var DefaultConcurrency = 0 //nolint:gochecknoglobals

// Config configures the Renderer behavior and capabilities.
type Config struct {
	// SSRClient enables server-side rendering of Inertia pages.
	// Only used by renderers backed by a template (NewFromTemplate, FromFS).
	//
	// If nil, only client-side rendering is used.
	SSRClient SSRClient

	// RootViewAttrs are HTML attributes applied to the root element.
	// Only used by renderers backed by a template.
	RootViewAttrs map[string]string

	// Version identifies the current asset version (e.g., build hash or timestamp).
	//
	// If empty, the version is left unset until Inertia.SetVersion is called.
	Version string

	// RootView is the name of the template rendering the HTML document.
	// Only used by renderers backed by a template.
	//
	// Defaults to the root template.
	RootView string

	// RootViewID is the HTML element ID where the Inertia app mounts.
	//
	// Defaults to "app" if not specified.
	RootViewID string

	// JSONMarshalOptions configures JSON serialization of the page object.
	JSONMarshalOptions []json.Options

	// Concurrency sets the maximum number of top-level deferred props
	// resolved concurrently.
	//
	// Defaults to DefaultConcurrency.
	Concurrency int
}

func (c *Config) defaults() {
	c.RootViewID = cmp.Or(c.RootViewID, DefaultRootViewID)
	c.Concurrency = max(cmp.Or(c.Concurrency, DefaultConcurrency), 0)

	debug.Assert(c.RootViewID != "", "RootViewID must be non-empty string")
}

// Renderer creates request-scoped Inertia engines sharing the same root view,
// asset version and serialization settings.
//
// Create a Renderer using New, NewFromTemplate or FromFS constructor functions.
// Renderer is safe for concurrent use.
type Renderer struct {
	rootView RootViewProvider
	config   Config
}

// New creates a Renderer rendering full page loads with rootView.
//
// If config is nil, default values are used.
func New(rootView RootViewProvider, config *Config) *Renderer {
	debug.Assert(rootView != nil, "expected rootView to be defined")

	if config == nil {
		//nolint:exhaustruct
		config = &Config{}
	}

	config.defaults()

	return &Renderer{rootView: rootView, config: *config}
}

// NewFromTemplate creates a Renderer rendering full page loads with
// the HTML template t.
//
// The template receives TemplateData.
func NewFromTemplate(t *template.Template, config *Config) *Renderer {
	debug.Assert(t != nil, "expected t to be defined")

	if config == nil {
		//nolint:exhaustruct
		config = &Config{}
	}

	config.defaults()

	rootView := NewTemplateRootView(NewHTMLTemplate(t), &TemplateRootViewConfig{
		SSRClient:          config.SSRClient,
		RootViewAttrs:      config.RootViewAttrs,
		RootView:           config.RootView,
		RootViewID:         config.RootViewID,
		JSONMarshalOptions: config.JSONMarshalOptions,
	})

	return New(rootView, config)
}

// FromFS creates a Renderer by loading HTML templates matching pattern
// from a file system.
//
// Unless config.RootView is set, the first template matching pattern
// renders the HTML document. The templates can use the "inertia" function
// to render the root element, see TemplateFuncs.
// If config is nil, default values are used.
func FromFS(fsys fs.FS, pattern string, config *Config) (*Renderer, error) {
	debug.Assert(fsys != nil, "expected fsys to be defined")
	debug.Assert(pattern != "", "expected pattern to be defined")

	t := template.New("inertia").Funcs(TemplateFuncs())

	t, err := t.ParseFS(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("inertia: failed to parse templates: %w", err)
	}

	if config == nil {
		//nolint:exhaustruct
		config = &Config{}
	}

	if config.RootView == "" {
		// ParseFS has already made sure that pattern matches.
		matches := must.Must(fs.Glob(fsys, pattern))
		config.RootView = path.Base(matches[0])
	}

	return NewFromTemplate(t, config), nil
}

// MustFromFS is like FromFS, but panics if an error occurs.
func MustFromFS(fsys fs.FS, pattern string, config *Config) *Renderer {
	return must.Must(FromFS(fsys, pattern, config))
}

// Version returns the asset version engines are created with.
func (r *Renderer) Version() string { return r.config.Version }

// FromRequest creates an Inertia engine bound to req.
func (r *Renderer) FromRequest(req *http.Request) *Inertia {
	return newInertia(req, r.rootView, &r.config)
}
