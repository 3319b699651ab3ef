package vite

import (
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/go-json-experiment/json"
)

type rawManifest = map[string]*ManifestEntry

// Manifest represents a parsed Vite build manifest (manifest.json).
// It maps entry points to their compiled assets and dependencies.
type Manifest struct {
	raw     rawManifest
	version string
}

// ManifestEntry describes a single asset in the Vite build manifest.
// It contains the asset's output path, dependencies, and metadata.
type ManifestEntry struct {
	Source         string   `json:"src"`
	File           string   `json:"file"`
	Name           string   `json:"name"`
	CSS            []string `json:"css"`
	Assets         []string `json:"assets"`
	Imports        []string `json:"imports"`
	DynamicImports []string `json:"dynamicImports"`
	IsEntry        bool     `json:"isEntry"`
	IsDynamicEntry bool     `json:"isDynamicEntry"`
}

// HTML resolves a manifest entry and returns all required CSS and JS tags.
// Asset URLs are prefixed with base.
//
// It recursively walks the import graph to include all dependencies:
// the entry is loaded as a module script, imported chunks are preloaded.
// Returns (css, js, error) where css and js are ready-to-use HTML tags.
func (m *Manifest) HTML(name string, base string) ([]template.HTML, []template.HTML, error) {
	entry, ok := m.raw[name]
	if !ok {
		return nil, nil, fmt.Errorf("inertia: entry %s not found in manifest", name)
	}

	var (
		css  []template.HTML
		js   []template.HTML
		seen = make(map[string]bool)
	)

	url := func(file string) string {
		return template.HTMLEscapeString(path.Join(base, file))
	}

	var walk func(string, *ManifestEntry)

	walk = func(key string, e *ManifestEntry) {
		if e == nil || seen[key] {
			return
		}

		seen[key] = true

		for _, link := range e.CSS {
			//nolint:gosec
			css = append(css, template.HTML(fmt.Sprintf(
				`<link rel="stylesheet" href="%s" />`, url(link))))
		}

		if key != name {
			//nolint:gosec
			js = append(js, template.HTML(fmt.Sprintf(
				`<link rel="modulepreload" href="%s" />`, url(e.File))))
		}

		for _, i := range e.Imports {
			walk(i, m.raw[i])
		}
	}

	walk(name, entry)

	//nolint:gosec
	js = append([]template.HTML{template.HTML(fmt.Sprintf(
		`<script type="module" src="%s"></script>`, url(entry.File)))}, js...)

	return css, js, nil
}

// Version returns the asset version derived from the manifest content.
// It changes whenever a new build is produced, and can be used as
// the Inertia asset version.
func (m *Manifest) Version() string {
	if m == nil {
		return ""
	}

	return m.version
}

// ParseManifest parses a Vite build manifest from JSON bytes.
//
// The manifest maps entry point names to their compiled assets and dependencies.
func ParseManifest(b []byte) (*Manifest, error) {
	var raw rawManifest

	err := json.Unmarshal(b, &raw)
	if err != nil {
		return nil, fmt.Errorf("inertia: failed to unmarshal manifest: %w", err)
	}

	return &Manifest{raw: raw, version: strconv.FormatUint(xxhash.Sum64(b), 16)}, nil
}

// ParseManifestFromFS reads and parses a Vite manifest from a file system.
func ParseManifestFromFS(fsys fs.FS, name string) (*Manifest, error) {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("inertia: failed to read manifest file: %w", err)
	}

	return ParseManifest(b)
}
