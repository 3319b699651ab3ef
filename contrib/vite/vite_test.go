package vite

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.inout.gg/inertia/v2"
)

const testManifest = `{
  "resources/js/app.tsx": {
    "file": "assets/app-4ed993c7.js",
    "src": "resources/js/app.tsx",
    "isEntry": true,
    "imports": ["_shared-B7PI925R.js"],
    "css": ["assets/app-5c3fc5b8.css"]
  },
  "_shared-B7PI925R.js": {
    "file": "assets/shared-B7PI925R.js",
    "name": "shared",
    "css": ["assets/shared-ChJ_j-JJ.css"]
  }
}`

func TestManifest_HTML(t *testing.T) {
	t.Parallel()

	m, err := ParseManifest([]byte(testManifest))
	require.NoError(t, err)

	t.Run("entry with imports", func(t *testing.T) {
		t.Parallel()

		css, js, err := m.HTML("resources/js/app.tsx", "/build")
		require.NoError(t, err)

		assert.Equal(t, []string{
			`<link rel="stylesheet" href="/build/assets/app-5c3fc5b8.css" />`,
			`<link rel="stylesheet" href="/build/assets/shared-ChJ_j-JJ.css" />`,
		}, toStrings(css))
		assert.Equal(t, []string{
			`<script type="module" src="/build/assets/app-4ed993c7.js"></script>`,
			`<link rel="modulepreload" href="/build/assets/shared-B7PI925R.js" />`,
		}, toStrings(js))
	})

	t.Run("unknown entry", func(t *testing.T) {
		t.Parallel()

		_, _, err := m.HTML("resources/js/missing.tsx", "/")
		require.Error(t, err)
	})
}

func TestManifest_Version(t *testing.T) {
	t.Parallel()

	m1, err := ParseManifest([]byte(testManifest))
	require.NoError(t, err)

	m2, err := ParseManifest([]byte(testManifest))
	require.NoError(t, err)

	m3, err := ParseManifest([]byte(`{}`))
	require.NoError(t, err)

	assert.NotEmpty(t, m1.Version())
	assert.Equal(t, m1.Version(), m2.Version())
	assert.NotEqual(t, m1.Version(), m3.Version())

	var m *Manifest
	assert.Empty(t, m.Version())
}

func TestParseManifest_Invalid(t *testing.T) {
	t.Parallel()

	_, err := ParseManifest([]byte(`not json`))
	require.Error(t, err)
}

func TestParseManifestFromFS(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{"build/manifest.json": {Data: []byte(testManifest)}}

	m, err := ParseManifestFromFS(fsys, "build/manifest.json")
	require.NoError(t, err)
	assert.NotEmpty(t, m.Version())

	_, err = ParseManifestFromFS(fsys, "missing.json")
	require.Error(t, err)
}

func TestNewTemplate(t *testing.T) {
	t.Parallel()

	const content = `{{ template "viteClient" }}{{ viteResource "resources/js/app.tsx" }}{{ inertia .Page }}`

	page := inertia.Page{}.WithComponent("Home").WithURL("/")

	t.Run("production", func(t *testing.T) {
		t.Parallel()

		m, err := ParseManifest([]byte(testManifest))
		require.NoError(t, err)

		tpl, err := NewTemplate(content, &Config{Manifest: m}) //nolint:exhaustruct
		require.NoError(t, err)

		var b strings.Builder
		require.NoError(t, tpl.Execute(&b, inertia.TemplateData{Page: &page})) //nolint:exhaustruct

		html := b.String()
		assert.NotContains(t, html, "@vite/client")
		assert.Contains(t, html, `<script type="module" src="/assets/app-4ed993c7.js"></script>`)
		assert.Contains(t, html, `<div id="app" data-page="`)
	})

	t.Run("development", func(t *testing.T) {
		t.Parallel()

		tpl, err := NewTemplate(content, &Config{Dev: true}) //nolint:exhaustruct
		require.NoError(t, err)

		var b strings.Builder
		require.NoError(t, tpl.Execute(&b, inertia.TemplateData{Page: &page})) //nolint:exhaustruct

		html := b.String()
		assert.Contains(t, html, `<script type="module" src="http://localhost:5173/@vite/client"></script>`)
		assert.Contains(t, html, `<script type="module" src="http://localhost:5173/resources/js/app.tsx"></script>`)
	})

	t.Run("production without manifest", func(t *testing.T) {
		t.Parallel()

		_, err := NewTemplate(content, nil)
		require.Error(t, err)
	})
}

func TestFromFS(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"app.html": {Data: []byte(`<html><head>{{ template "viteReactRefresh" }}</head></html>`)},
	}

	tpl, err := FromFS(fsys, "*.html", &Config{Dev: true}) //nolint:exhaustruct
	require.NoError(t, err)

	var b strings.Builder
	require.NoError(t, tpl.ExecuteTemplate(&b, "app.html", nil))
	assert.Contains(t, b.String(), "RefreshRuntime.injectIntoGlobalHook(window)")
}

func toStrings[T ~string](in []T) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}

	return out
}
