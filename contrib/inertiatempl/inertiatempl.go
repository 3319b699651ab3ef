// Package inertiatempl renders the Inertia root view with templ components.
//
// Example:
//
//	templ Layout(page *inertia.Page, head, body templ.Component) {
//		<html>
//			<head>@head</head>
//			<body>@body</body>
//		</html>
//	}
//
//	renderer := inertia.New(inertiatempl.NewRootView(Layout, nil), nil)
package inertiatempl

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"go.inout.gg/inertia/v2"
)

var _ inertia.RootViewProvider = (*RootView)(nil)

// Layout renders the HTML document. The head component is empty unless
// the page is rendered on the server, the body component renders either
// the root element or the server-rendered markup.
type Layout func(page *inertia.Page, head, body templ.Component) templ.Component

// Config configures a RootView.
type Config struct {
	// SSRClient enables server-side rendering of Inertia pages.
	//
	// If nil, only client-side rendering is used.
	SSRClient inertia.SSRClient
}

// RootView is an inertia.RootViewProvider rendering a templ layout.
type RootView struct {
	layout    Layout
	ssrClient inertia.SSRClient
}

// NewRootView creates a RootView rendering layout.
//
// If config is nil, default values are used.
func NewRootView(layout Layout, config *Config) *RootView {
	if config == nil {
		config = &Config{SSRClient: nil}
	}

	return &RootView{layout: layout, ssrClient: config.SSRClient}
}

func (v *RootView) RootView(ctx context.Context, page *inertia.Page) (string, error) {
	head, body := empty(), RootElement(page)

	if v.ssrClient != nil {
		data, err := v.ssrClient.Render(ctx, page)
		if err != nil {
			return "", fmt.Errorf("inertia: failed to render SSR data: %w", err)
		}

		head, body = raw(data.Head), raw(data.Body)
	}

	var sb strings.Builder
	if err := v.layout(page, head, body).Render(ctx, &sb); err != nil {
		return "", fmt.Errorf("inertia: failed to render templ layout: %w", err)
	}

	return sb.String(), nil
}

// RootElement returns a component rendering the root element
// the Inertia app mounts to.
//
//	@inertiatempl.RootElement(page)
func RootElement(page *inertia.Page) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		html, err := inertia.RootElement(page)
		if err != nil {
			return err //nolint:wrapcheck
		}

		_, err = io.WriteString(w, string(html))

		return err //nolint:wrapcheck
	})
}

func raw(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err //nolint:wrapcheck
	})
}

func empty() templ.Component { return raw("") }
