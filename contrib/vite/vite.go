// Package vite provides a minimal integration for Vite.
// It adds support for Vite Client and Vite React Refresh in development mode.
// It also provides a support for bundling Vite resources declared
// in the Vite manifest file.
package vite

import (
	"cmp"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"strings"

	"go.inout.gg/foundations/must"

	"go.inout.gg/inertia/v2"
)

const (
	DefaultViteAddress = "http://localhost:5173"
	DefaultAssetsPath  = "/"
)

const devTemplates = `
{{- define "viteClient" -}}
{{- if viteDev -}}
<script type="module" src="{{ viteAddress }}/@vite/client"></script>
{{- end -}}
{{- end -}}
{{- define "viteReactRefresh" -}}
{{- if viteDev -}}
<script type="module">
  import RefreshRuntime from "{{ viteAddress }}/@react-refresh"
  RefreshRuntime.injectIntoGlobalHook(window)
  window.$RefreshReg$ = () => {}
  window.$RefreshSig$ = () => (type) => type
  window.__vite_plugin_react_preamble_installed__ = true
</script>
{{- end -}}
{{- end -}}`

type Config struct {
	// Manifest resolves resources in production mode.
	// Required unless Dev is set.
	Manifest *Manifest

	// TemplateName is the name of the root template.
	//
	// Defaults to "inertia".
	TemplateName string

	// ViteAddress is the address of the Vite dev server.
	//
	// Defaults to DefaultViteAddress.
	ViteAddress string

	// AssetsPath is the URL path the built assets are served from.
	//
	// Defaults to "/".
	AssetsPath string

	// Dev enables development mode: resources are loaded from the Vite
	// dev server and "viteClient" and "viteReactRefresh" are rendered.
	Dev bool
}

func (c *Config) defaults() {
	c.ViteAddress = strings.TrimSuffix(cmp.Or(c.ViteAddress, DefaultViteAddress), "/")
	c.TemplateName = cmp.Or(c.TemplateName, "inertia")
	c.AssetsPath = cmp.Or(c.AssetsPath, DefaultAssetsPath)
}

// NewTemplate creates a new template from a string.
//
// The resulting template will have built-in support for Vite.
// To include Vite React Refresh, use {{template "viteReactRefresh"}}
// and Vite client, use {{template "viteClient"}}.
// To include a Vite resource, use {{viteResource "path/to/resource.js"}}.
// Unless config.Dev is set, "viteClient" and "viteReactRefresh"
// templates are blank.
//
// The root element is rendered with {{inertia .Page}}.
func NewTemplate(content string, config *Config) (*template.Template, error) {
	if config == nil {
		//nolint:exhaustruct
		config = &Config{}
	}

	config.defaults()

	t, err := newTemplate(config)
	if err != nil {
		return nil, err
	}

	if _, err := t.Parse(content); err != nil {
		return nil, fmt.Errorf("inertia: failed to parse template: %w", err)
	}

	return t, nil
}

// Must is like NewTemplate but panics on error.
func Must(content string, c *Config) *template.Template {
	return must.Must(NewTemplate(content, c))
}

// FromFS creates a new template from a file system.
// See NewTemplate for more information.
func FromFS(fsys fs.FS, path string, cfg *Config) (*template.Template, error) {
	if cfg == nil {
		//nolint:exhaustruct
		cfg = &Config{}
	}

	cfg.defaults()

	t, err := newTemplate(cfg)
	if err != nil {
		return nil, err
	}

	if _, err := t.ParseFS(fsys, path); err != nil {
		return nil, fmt.Errorf("inertia: failed to parse template: %w", err)
	}

	return t, nil
}

func newTemplate(config *Config) (*template.Template, error) {
	if !config.Dev && config.Manifest == nil {
		return nil, errors.New("inertia: vite manifest is required in production mode")
	}

	funcs := inertia.TemplateFuncs()
	funcs["viteDev"] = func() bool { return config.Dev }
	funcs["viteAddress"] = func() string { return config.ViteAddress }
	funcs["viteResource"] = func(name string) (template.HTML, error) {
		return resource(config, name)
	}

	t, err := template.New(config.TemplateName).Funcs(funcs).Parse(devTemplates)
	if err != nil {
		return nil, fmt.Errorf("inertia: failed to parse vite templates: %w", err)
	}

	return t, nil
}

// resource returns the tags loading the resource called name.
func resource(config *Config, name string) (template.HTML, error) {
	if config.Dev {
		//nolint:gosec
		return template.HTML(fmt.Sprintf(
			`<script type="module" src="%s/%s"></script>`,
			config.ViteAddress,
			template.HTMLEscapeString(strings.TrimPrefix(name, "/")),
		)), nil
	}

	css, js, err := config.Manifest.HTML(name, config.AssetsPath)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, tag := range css {
		b.WriteString(string(tag))
	}

	for _, tag := range js {
		b.WriteString(string(tag))
	}

	return template.HTML(b.String()), nil //nolint:gosec
}
