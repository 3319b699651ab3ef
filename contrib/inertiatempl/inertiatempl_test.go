package inertiatempl

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"go.inout.gg/inertia/v2"
	"go.inout.gg/inertia/v2/internal/inertiassr"
)

func layout(_ *inertia.Page, head, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<html><head>"); err != nil {
			return err
		}

		if err := head.Render(ctx, w); err != nil {
			return err
		}

		if _, err := io.WriteString(w, "</head><body>"); err != nil {
			return err
		}

		if err := body.Render(ctx, w); err != nil {
			return err
		}

		_, err := io.WriteString(w, "</body></html>")

		return err
	})
}

func TestRootView(t *testing.T) {
	t.Parallel()

	page := inertia.Page{}.WithComponent("Home").WithURL("/")

	t.Run("client-side rendering", func(t *testing.T) {
		t.Parallel()

		html, err := NewRootView(layout, nil).RootView(t.Context(), &page)
		require.NoError(t, err)

		assert.Equal(t,
			`<html><head></head><body><div id="app" data-page="{&#34;component&#34;:&#34;Home&#34;,&#34;props&#34;:{},&#34;url&#34;:&#34;/&#34;,&#34;version&#34;:null}"></div></body></html>`,
			html,
		)
	})

	t.Run("server-side rendering", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		ssr := inertiassr.NewMockSSRClient(ctrl)
		ssr.EXPECT().
			Render(gomock.Any(), gomock.Any()).
			Return(&inertia.SSRTemplateData{Head: "<title>Home</title>", Body: "<div>Home</div>"}, nil)

		html, err := NewRootView(layout, &Config{SSRClient: ssr}).RootView(t.Context(), &page)
		require.NoError(t, err)
		assert.Equal(t, `<html><head><title>Home</title></head><body><div>Home</div></body></html>`, html)
	})

	t.Run("server-side rendering error", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		ssr := inertiassr.NewMockSSRClient(ctrl)
		ssr.EXPECT().Render(gomock.Any(), gomock.Any()).Return(nil, errors.New("unavailable"))

		_, err := NewRootView(layout, &Config{SSRClient: ssr}).RootView(t.Context(), &page)
		require.Error(t, err)
	})
}

func TestRootElement(t *testing.T) {
	t.Parallel()

	page := inertia.Page{}.WithComponent("Users/Index").WithURL("/users")

	var sb strings.Builder
	require.NoError(t, RootElement(&page).Render(t.Context(), &sb))
	assert.True(t, strings.HasPrefix(sb.String(), `<div id="app" data-page="`))
	assert.Contains(t, sb.String(), "Users/Index")
}
