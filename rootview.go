package inertia

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"html/template"
	"maps"
	"slices"
	"strings"

	"github.com/go-json-experiment/json"
	"go.inout.gg/foundations/debug"
	"go.inout.gg/foundations/must"
)

const (
	// DefaultRootViewID is the default root HTML element ID to which
	// the Inertia.js app is mounted.
	DefaultRootViewID = "app"
)

var (
	_ RootViewProvider = (RootViewProviderFunc)(nil)
	_ RootViewProvider = (*TemplateRootView)(nil)
	_ TemplateRenderer = (*HTMLTemplate)(nil)
)

// RootViewProvider renders the full HTML document of an initial page load.
type RootViewProvider interface {
	// RootView returns the HTML document embedding page.
	RootView(ctx context.Context, page *Page) (string, error)
}

// RootViewProviderFunc is a function adapter that implements RootViewProvider.
type RootViewProviderFunc func(ctx context.Context, page *Page) (string, error)

func (fn RootViewProviderFunc) RootView(ctx context.Context, page *Page) (string, error) {
	return fn(ctx, page)
}

// TemplateData contains the data passed to the root view template.
type TemplateData struct {
	// Page is the page being rendered.
	Page *Page

	// InertiaHead contains SSR-generated head elements (title, meta tags, etc.).
	InertiaHead template.HTML

	// InertiaBody contains the rendered page content: either the SSR-generated
	// markup or the root element carrying the page object.
	InertiaBody template.HTML
}

// TemplateRenderer renders a named template into a string.
type TemplateRenderer interface {
	Render(ctx context.Context, name string, data *TemplateData) (string, error)
}

// HTMLTemplate is a TemplateRenderer backed by html/template.
type HTMLTemplate struct {
	t *template.Template
}

// NewHTMLTemplate wraps t into a TemplateRenderer.
func NewHTMLTemplate(t *template.Template) *HTMLTemplate {
	debug.Assert(t != nil, "expected t to be defined")

	return &HTMLTemplate{t}
}

// Render executes the template called name, or the root template if name is empty.
func (h *HTMLTemplate) Render(_ context.Context, name string, data *TemplateData) (string, error) {
	var buf strings.Builder

	var err error
	if name == "" {
		err = h.t.Execute(&buf, data)
	} else {
		err = h.t.ExecuteTemplate(&buf, name, data)
	}

	if err != nil {
		return "", fmt.Errorf("inertia: failed to execute HTML template: %w", err)
	}

	return buf.String(), nil
}

// TemplateRootViewConfig configures a TemplateRootView.
type TemplateRootViewConfig struct {
	// SSRClient enables server-side rendering of Inertia pages.
	//
	// If nil, only client-side rendering is used.
	SSRClient SSRClient

	// RootViewAttrs are HTML attributes applied to the root element.
	RootViewAttrs map[string]string

	// RootView is the name of the template to render.
	//
	// Defaults to the root template.
	RootView string

	// RootViewID is the HTML element ID where the Inertia app mounts.
	//
	// Defaults to "app" if not specified.
	RootViewID string

	// JSONMarshalOptions configures JSON serialization of the page object.
	JSONMarshalOptions []json.Options
}

func (c *TemplateRootViewConfig) defaults() {
	c.RootViewID = cmp.Or(c.RootViewID, DefaultRootViewID)

	debug.Assert(c.RootViewID != "", "RootViewID must be non-empty string")
}

// TemplateRootView is a RootViewProvider that renders a template with
// the page root element, or the SSR-rendered markup, as its body.
type TemplateRootView struct {
	renderer           TemplateRenderer
	ssrClient          SSRClient
	rootView           string
	rootViewID         string
	rootViewAttrs      []pair[[]byte, []byte]
	jsonMarshalOptions []json.Options
}

// NewTemplateRootView creates a TemplateRootView rendering through renderer.
//
// If config is nil, default values are used.
func NewTemplateRootView(renderer TemplateRenderer, config *TemplateRootViewConfig) *TemplateRootView {
	debug.Assert(renderer != nil, "expected renderer to be defined")

	if config == nil {
		//nolint:exhaustruct
		config = &TemplateRootViewConfig{}
	}

	config.defaults()

	attrs := make([]pair[[]byte, []byte], 0, len(config.RootViewAttrs))
	for _, key := range slices.Sorted(maps.Keys(config.RootViewAttrs)) {
		attrs = append(attrs, pair[[]byte, []byte]{[]byte(key), []byte(config.RootViewAttrs[key])})
	}

	return &TemplateRootView{
		renderer:           renderer,
		ssrClient:          config.SSRClient,
		rootView:           config.RootView,
		rootViewID:         config.RootViewID,
		rootViewAttrs:      attrs,
		jsonMarshalOptions: config.JSONMarshalOptions,
	}
}

func (v *TemplateRootView) RootView(ctx context.Context, page *Page) (string, error) {
	data := TemplateData{Page: page, InertiaHead: "", InertiaBody: ""}

	if v.ssrClient != nil {
		ssrData, err := v.ssrClient.Render(ctx, page)
		if err != nil {
			return "", fmt.Errorf("inertia: failed to render SSR data: %w", err)
		}

		data.InertiaHead = template.HTML(ssrData.Head) //nolint:gosec
		data.InertiaBody = template.HTML(ssrData.Body) //nolint:gosec
	} else {
		body, err := makeRootElement(page, v.rootViewID, v.rootViewAttrs, v.jsonMarshalOptions)
		if err != nil {
			return "", fmt.Errorf("inertia: failed to create an HTML container: %w", err)
		}

		data.InertiaBody = body
	}

	html, err := v.renderer.Render(ctx, v.rootView, &data)
	if err != nil {
		return "", err //nolint:wrapcheck
	}

	return html, nil
}

// RootElement returns the root element the Inertia app mounts to,
// with the page object embedded into its data-page attribute:
//
//	<div id="app" data-page="{...}"></div>
func RootElement(page *Page) (template.HTML, error) {
	return makeRootElement(page, DefaultRootViewID, nil, nil)
}

// TemplateFuncs returns template functions for rendering the root element
// from a template: {{ inertia .Page }}.
//
// The inertia function renders the element like RootElement, with
// DefaultRootViewID and no extra attributes. Templates rendered by
// TemplateRootView should use {{ .InertiaBody }} to honor
// TemplateRootViewConfig.RootViewID and RootViewAttrs.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{"inertia": RootElement}
}

// makeRootElement creates a root view element with the given page data.
func makeRootElement(
	page *Page,
	id string,
	attrs []pair[[]byte, []byte],
	opts []json.Options,
) (template.HTML, error) {
	debug.Assert(page != nil, "expected page to be defined")

	pageBytes, err := page.Marshal(opts...)
	if err != nil {
		return "", fmt.Errorf("inertia: an error occurred while rendering page: %w", err)
	}

	var w strings.Builder

	_ = must.Must(w.WriteString(`<div id="`))
	template.HTMLEscape(&w, []byte(id))
	_ = must.Must(w.WriteString(`" data-page="`))
	template.HTMLEscape(&w, pageBytes)
	_ = must.Must(w.WriteRune('"'))

	for _, kv := range attrs {
		// Skip the attributes that are already set.
		if bytes.Equal(kv.key, []byte("data-page")) || bytes.Equal(kv.key, []byte("id")) {
			continue
		}

		_ = must.Must(w.WriteRune(' '))
		_ = must.Must(w.Write(kv.key))
		_ = must.Must(w.WriteString(`="`))
		template.HTMLEscape(&w, kv.value)
		_ = must.Must(w.WriteRune('"'))
	}

	_ = must.Must(w.WriteString(`></div>`))

	//nolint:gosec
	return template.HTML(w.String()), nil
}

// pair is a key-value pair.
type pair[K any, V any] struct {
	key   K
	value V
}
