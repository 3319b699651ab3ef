package inertiabase

import (
	"bytes"
	"slices"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Page is the payload exchanged with the Inertia.js client router.
//
// Page is immutable: every With* method returns a new value.
type Page struct {
	version   *string
	component string
	url       string
	props     Props
}

// NewPage returns an empty page.
func NewPage() Page { return Page{} } //nolint:exhaustruct

// PageFrom returns a page with the given component, props and URL.
func PageFrom(component string, props Props, url string) Page {
	return Page{component: component, props: slices.Clone(props), url: url, version: nil}
}

func (p Page) Component() string { return p.component }
func (p Page) URL() string       { return p.url }
func (p Page) Props() Props      { return slices.Clone(p.props) }

// Version returns the asset version and whether it has been set.
func (p Page) Version() (string, bool) {
	if p.version == nil {
		return "", false
	}

	return *p.version, true
}

func (p Page) WithComponent(component string) Page {
	p.component = component
	return p
}

func (p Page) WithURL(url string) Page {
	p.url = url
	return p
}

func (p Page) WithVersion(version string) Page {
	p.version = &version
	return p
}

// WithProps overlays props on top of the page props.
func (p Page) WithProps(props Props) Page {
	p.props = p.props.Merge(props)
	return p
}

// WithProp sets a single prop.
func (p Page) WithProp(key string, value any) Page {
	p.props = p.props.With(key, value)
	return p
}

// WithoutProps removes the given props.
func (p Page) WithoutProps(keys ...string) Page {
	p.props = p.props.Without(keys...)
	return p
}

// MarshalJSON encodes the page as
// {"component":...,"props":{...},"url":...,"version":...}.
func (p Page) MarshalJSON() ([]byte, error) { return p.Marshal() }

// Marshal is like MarshalJSON, but applies opts when encoding prop values.
func (p Page) Marshal(opts ...json.Options) ([]byte, error) {
	var buf bytes.Buffer

	enc := jsontext.NewEncoder(&buf)
	if err := p.encode(enc, opts...); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}

func (p Page) encode(enc *jsontext.Encoder, opts ...json.Options) error {
	version := jsontext.Null
	if p.version != nil {
		version = jsontext.String(*p.version)
	}

	tokens := []jsontext.Token{
		jsontext.BeginObject,
		jsontext.String("component"), jsontext.String(p.component),
		jsontext.String("props"),
	}
	for _, tok := range tokens {
		if err := enc.WriteToken(tok); err != nil {
			return err //nolint:wrapcheck
		}
	}

	if err := p.props.encode(enc, opts...); err != nil {
		return err
	}

	tokens = []jsontext.Token{
		jsontext.String("url"), jsontext.String(p.url),
		jsontext.String("version"), version,
		jsontext.EndObject,
	}
	for _, tok := range tokens {
		if err := enc.WriteToken(tok); err != nil {
			return err //nolint:wrapcheck
		}
	}

	return nil
}
