package inertia

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.inout.gg/inertia/v2/internal/inertiaheader"
	"go.inout.gg/inertia/v2/internal/inertiatest"
)

//nolint:gochecknoglobals
var okRootView = RootViewProviderFunc(func(context.Context, *Page) (string, error) {
	return "<html>ok</html>", nil
})

func newTestInertia(t *testing.T, method string, reqConfig *inertiatest.RequestConfig, config *Config) *Inertia {
	t.Helper()

	req, _ := inertiatest.NewRequest(method, "/users", reqConfig)

	return newInertia(req, okRootView, config)
}

func counter(n *atomic.Int32, v any) func() any {
	return func() any {
		n.Add(1)
		return v
	}
}

func TestInertia_Render(t *testing.T) {
	t.Parallel()

	t.Run("full page load", func(t *testing.T) {
		t.Parallel()

		i := newTestInertia(t, http.MethodGet, nil, nil)

		resp, err := i.Render("Users/Index", NewProp("list", []string{"a", "b"}), WithURL("/users"))
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, inertiaheader.ContentTypeHTML, resp.Header.Get(inertiaheader.HeaderContentType))
		assert.Equal(t, "<html>ok</html>", string(resp.Body))
	})

	t.Run("inertia request", func(t *testing.T) {
		t.Parallel()

		i := newTestInertia(t, http.MethodGet, &inertiatest.RequestConfig{Inertia: true}, nil) //nolint:exhaustruct

		resp, err := i.Render("Users/Index", NewProp("list", []string{"a", "b"}), WithURL("/users"))
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, inertiaheader.ContentTypeJSON, resp.Header.Get(inertiaheader.HeaderContentType))
		assert.Equal(t,
			`{"component":"Users/Index","props":{"list":["a","b"]},"url":"/users","version":null}`,
			string(resp.Body),
		)
	})

	t.Run("inertia request with version", func(t *testing.T) {
		t.Parallel()

		i := newTestInertia(t, http.MethodGet, &inertiatest.RequestConfig{Inertia: true}, &Config{Version: "v1"}) //nolint:exhaustruct

		resp, err := i.Render("Home", nil)
		require.NoError(t, err)

		assert.Equal(t, `{"component":"Home","props":{},"url":"/users","version":"v1"}`, string(resp.Body))
	})

	t.Run("props keep their order", func(t *testing.T) {
		t.Parallel()

		i := newTestInertia(t, http.MethodGet, &inertiatest.RequestConfig{Inertia: true}, nil) //nolint:exhaustruct

		resp, err := i.Render("Home", Props{
			NewProp("zeta", 1),
			NewProp("alpha", 2),
			NewProp("mid", 3),
		})
		require.NoError(t, err)

		assert.Equal(t, `{"component":"Home","props":{"zeta":1,"alpha":2,"mid":3},"url":"/users","version":null}`, string(resp.Body))
	})

	t.Run("url defaults to request uri", func(t *testing.T) {
		t.Parallel()

		req, _ := inertiatest.NewRequest(http.MethodGet, "/users?page=2&sort=name", &inertiatest.RequestConfig{Inertia: true}) //nolint:exhaustruct
		i := newInertia(req, okRootView, nil)

		_, err := i.Render("Users/Index", nil)
		require.NoError(t, err)

		assert.Equal(t, "/users?page=2&sort=name", i.Page().URL())
	})
}

func TestInertia_Render_RoundTrip(t *testing.T) {
	t.Parallel()

	props := Props{
		NewProp("list", []string{"a", "b"}),
		NewProp("count", func() any { return 2 }),
	}

	var rendered []byte

	req, _ := inertiatest.NewRequest(http.MethodGet, "/users", nil)
	i := newInertia(req, RootViewProviderFunc(func(_ context.Context, page *Page) (string, error) {
		var err error
		rendered, err = page.Marshal()

		return "<html></html>", err
	}), &Config{Version: "v1"}) //nolint:exhaustruct

	_, err := i.Render("Users/Index", props)
	require.NoError(t, err)

	req, _ = inertiatest.NewRequest(http.MethodGet, "/users", &inertiatest.RequestConfig{Inertia: true, Version: "v1"}) //nolint:exhaustruct
	i = newInertia(req, okRootView, &Config{Version: "v1"})                                                                //nolint:exhaustruct

	resp, err := i.Render("Users/Index", props)
	require.NoError(t, err)

	assert.Equal(t, string(resp.Body), string(rendered))
}

func TestInertia_Render_LazyProps(t *testing.T) {
	t.Parallel()

	newProps := func(calls *atomic.Int32) Props {
		return Props{
			NewProp("a", 1),
			NewProp("b", counter(calls, 2)),
			Optional("lazy", LazyFunc(func(context.Context) (any, error) {
				calls.Add(10)
				return 3, nil
			})),
		}
	}

	tests := []struct {
		reqConfig *inertiatest.RequestConfig
		name      string
		wantJSON  string
		wantCalls int32
	}{
		{
			name:      "full reload drops lazy props",
			reqConfig: &inertiatest.RequestConfig{Inertia: true}, //nolint:exhaustruct
			wantJSON:  `{"a":1,"b":2}`,
			wantCalls: 1,
		},
		{
			name: "partial reload selects requested props in original order",
			reqConfig: &inertiatest.RequestConfig{ //nolint:exhaustruct
				Inertia:          true,
				PartialComponent: "Users/Index",
				Whitelist:        []string{"lazy", "b", "missing"},
			},
			wantJSON:  `{"b":2,"lazy":3}`,
			wantCalls: 11,
		},
		{
			name: "partial reload of another component",
			reqConfig: &inertiatest.RequestConfig{ //nolint:exhaustruct
				Inertia:          true,
				PartialComponent: "Users/Show",
				Whitelist:        []string{"lazy"},
			},
			wantJSON:  `{"a":1,"b":2}`,
			wantCalls: 1,
		},
		{
			name: "empty partial data",
			reqConfig: &inertiatest.RequestConfig{ //nolint:exhaustruct
				Inertia:          true,
				PartialComponent: "Users/Index",
				Whitelist:        []string{""},
			},
			wantJSON:  `{"a":1,"b":2}`,
			wantCalls: 1,
		},
		{
			name: "blank partial data",
			reqConfig: &inertiatest.RequestConfig{ //nolint:exhaustruct
				Inertia:          true,
				PartialComponent: "Users/Index",
				Whitelist:        []string{" , ,"},
			},
			wantJSON:  `{"a":1,"b":2}`,
			wantCalls: 1,
		},
		{
			name: "partial data with whitespace",
			reqConfig: &inertiatest.RequestConfig{ //nolint:exhaustruct
				Inertia:          true,
				PartialComponent: "Users/Index",
				Whitelist:        []string{" a ", "", " lazy"},
			},
			wantJSON:  `{"a":1,"lazy":3}`,
			wantCalls: 10,
		},
		{
			name: "partial reload headers on full page load",
			reqConfig: &inertiatest.RequestConfig{ //nolint:exhaustruct
				PartialComponent: "Users/Index",
				Whitelist:        []string{"lazy"},
			},
			wantJSON:  `{"lazy":3}`,
			wantCalls: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var calls atomic.Int32

			i := newTestInertia(t, http.MethodGet, tt.reqConfig, nil)

			_, err := i.Render("Users/Index", newProps(&calls))
			require.NoError(t, err)

			b, err := i.Page().Props().MarshalJSON()
			require.NoError(t, err)

			assert.Equal(t, tt.wantJSON, string(b))
			assert.Equal(t, tt.wantCalls, calls.Load())
		})
	}
}

func TestInertia_Render_NestedDeferredValues(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	props := Props{
		NewProp("m", map[string]any{"x": counter(&calls, 1), "y": "plain"}),
		NewProp("s", []any{counter(&calls, 2), "plain"}),
		NewProp("p", Props{NewProp("q", counter(&calls, 3))}),
		NewProp("e", func() (any, error) {
			calls.Add(1)
			return 4, nil
		}),
		NewProp("c", func(ctx context.Context) (any, error) {
			calls.Add(1)
			return ctx != nil, nil
		}),
		NewProp("r", func() any {
			calls.Add(1)
			// Returned values are not resolved again.
			return map[string]any{"inner": "value"}
		}),
	}

	i := newTestInertia(t, http.MethodGet, &inertiatest.RequestConfig{Inertia: true}, nil) //nolint:exhaustruct

	resp, err := i.Render("Nested", props)
	require.NoError(t, err)

	assert.Equal(t,
		`{"component":"Nested","props":{"m":{"x":1,"y":"plain"},"s":[2,"plain"],"p":{"q":3},"e":4,"c":true,"r":{"inner":"value"}},"url":"/users","version":null}`,
		string(resp.Body),
	)
	assert.Equal(t, int32(6), calls.Load())
}

func TestInertia_Render_DeferredValuesInTypedContainers(t *testing.T) {
	t.Parallel()

	one := func() any { return 1 }

	tests := []struct {
		value any
		name  string
		want  string
	}{
		{
			name:  "slice of maps",
			value: []map[string]any{{"x": one}},
			want:  `[{"x":1}]`,
		},
		{
			name:  "slice of props",
			value: []Props{{NewProp("b", one), NewProp("a", "plain")}},
			want:  `[{"b":1,"a":"plain"}]`,
		},
		{
			name:  "map of funcs",
			value: map[string]func() any{"y": one, "x": one},
			want:  `{"x":1,"y":1}`,
		},
		{
			name:  "array of lazy values",
			value: [2]Lazy{LazyFunc(func(context.Context) (any, error) { return 1, nil }), nil},
			want:  `[1,null]`,
		},
		{
			name:  "nested typed slices",
			value: [][]func() (any, error){{func() (any, error) { return "deep", nil }}},
			want:  `[["deep"]]`,
		},
		{
			name:  "lazy prop in a map",
			value: map[string]LazyProp{"l": NewLazyProp(LazyFunc(func(context.Context) (any, error) { return 1, nil }))},
			want:  `{"l":1}`,
		},
		{
			name:  "plain typed slice",
			value: []string{"a", "b"},
			want:  `["a","b"]`,
		},
		{
			name:  "typed nil slice",
			value: []Props(nil),
			want:  `[]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			i := newTestInertia(t, http.MethodGet, &inertiatest.RequestConfig{Inertia: true}, nil) //nolint:exhaustruct

			resp, err := i.Render("Nested", NewProp("n", tt.value))
			require.NoError(t, err)

			assert.Equal(t,
				`{"component":"Nested","props":{"n":`+tt.want+`},"url":"/users","version":null}`,
				string(resp.Body),
			)
		})
	}

	t.Run("error path", func(t *testing.T) {
		t.Parallel()

		errBoom := errors.New("boom")
		i := newTestInertia(t, http.MethodGet, &inertiatest.RequestConfig{Inertia: true}, nil) //nolint:exhaustruct

		_, err := i.Render("Nested", NewProp("n", []map[string]func() (any, error){
			{"x": func() (any, error) { return nil, errBoom }},
		}))
		require.ErrorIs(t, err, errBoom)
		assert.Contains(t, err.Error(), "0: x: boom")
	})
}

func TestInertia_Render_Errors(t *testing.T) {
	t.Parallel()

	t.Run("unencodable prop", func(t *testing.T) {
		t.Parallel()

		i := newTestInertia(t, http.MethodGet, &inertiatest.RequestConfig{Inertia: true}, nil) //nolint:exhaustruct

		resp, err := i.Render("Home", NewProp("ch", make(chan int)))
		require.Error(t, err)
		assert.Nil(t, resp)
	})

	t.Run("failing deferred value", func(t *testing.T) {
		t.Parallel()

		errBoom := errors.New("boom")
		i := newTestInertia(t, http.MethodGet, &inertiatest.RequestConfig{Inertia: true}, nil) //nolint:exhaustruct

		_, err := i.Render("Home", NewProp("fails", func() (any, error) { return nil, errBoom }))
		require.ErrorIs(t, err, errBoom)
	})

	t.Run("missing root view", func(t *testing.T) {
		t.Parallel()

		req, _ := inertiatest.NewRequest(http.MethodGet, "/", nil)

		_, err := newInertia(req, nil, nil).Render("Home", nil)
		require.ErrorIs(t, err, ErrRootViewNotConfigured)
	})

	t.Run("failing root view", func(t *testing.T) {
		t.Parallel()

		errBoom := errors.New("boom")
		req, _ := inertiatest.NewRequest(http.MethodGet, "/", nil)

		_, err := newInertia(req, RootViewProviderFunc(func(context.Context, *Page) (string, error) {
			return "", errBoom
		}), nil).Render("Home", nil)
		require.ErrorIs(t, err, errBoom)
	})
}

func TestInertia_Render_Concurrency(t *testing.T) {
	t.Parallel()

	newProps := func(calls *atomic.Int32) Props {
		props := make(Props, 0, 8)
		for n := range 8 {
			props = append(props, NewProp(string(rune('a'+n)), counter(calls, n)))
		}

		return append(props, NewProp("plain", true))
	}

	render := func(t *testing.T, opts ...RenderOption) ([]byte, int32) {
		t.Helper()

		var calls atomic.Int32

		i := newTestInertia(t, http.MethodGet, &inertiatest.RequestConfig{Inertia: true}, nil) //nolint:exhaustruct

		resp, err := i.Render("Home", newProps(&calls), opts...)
		require.NoError(t, err)

		return resp.Body, calls.Load()
	}

	sequential, seqCalls := render(t)
	concurrent, concCalls := render(t, WithConcurrency(4))

	assert.Equal(t, string(sequential), string(concurrent))
	assert.Equal(t, int32(8), seqCalls)
	assert.Equal(t, int32(8), concCalls)

	t.Run("configured on renderer", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32

		i := newTestInertia(t, http.MethodGet, &inertiatest.RequestConfig{Inertia: true}, &Config{Concurrency: 2}) //nolint:exhaustruct

		resp, err := i.Render("Home", newProps(&calls))
		require.NoError(t, err)

		assert.Equal(t, string(sequential), string(resp.Body))
	})

	t.Run("error", func(t *testing.T) {
		t.Parallel()

		errBoom := errors.New("boom")
		i := newTestInertia(t, http.MethodGet, &inertiatest.RequestConfig{Inertia: true}, nil) //nolint:exhaustruct

		_, err := i.Render("Home", Props{
			NewProp("ok", func() any { return 1 }),
			NewProp("fails", func() (any, error) { return nil, errBoom }),
		}, WithConcurrency(2))
		require.ErrorIs(t, err, errBoom)
	})
}

func TestInertia_Share(t *testing.T) {
	t.Parallel()

	t.Run("shared props are merged", func(t *testing.T) {
		t.Parallel()

		i := newTestInertia(t, http.MethodGet, &inertiatest.RequestConfig{Inertia: true}, nil) //nolint:exhaustruct
		i.Share("auth", "ada")
		i.Share("flash", "saved")

		resp, err := i.Render("Home", Props{NewProp("title", "Home"), NewProp("flash", "overridden")})
		require.NoError(t, err)

		assert.Equal(t,
			`{"component":"Home","props":{"auth":"ada","flash":"overridden","title":"Home"},"url":"/users","version":null}`,
			string(resp.Body),
		)
	})

	t.Run("shared props survive partial reloads", func(t *testing.T) {
		t.Parallel()

		i := newTestInertia(t, http.MethodGet, &inertiatest.RequestConfig{ //nolint:exhaustruct
			Inertia:          true,
			PartialComponent: "Home",
			Whitelist:        []string{"title"},
		}, nil)
		i.Share("auth", "ada")
		i.Share("notifications", NewLazyProp(LazyFunc(func(context.Context) (any, error) { return 3, nil })))

		_, err := i.Render("Home", Props{NewProp("title", "Home"), NewProp("body", "...")})
		require.NoError(t, err)

		assert.Equal(t, []string{"auth", "title"}, i.Page().Props().Keys())
	})

	t.Run("shared lazy props are dropped on full reloads", func(t *testing.T) {
		t.Parallel()

		i := newTestInertia(t, http.MethodGet, &inertiatest.RequestConfig{Inertia: true}, nil) //nolint:exhaustruct
		i.Share("notifications", NewLazyProp(LazyFunc(func(context.Context) (any, error) { return 3, nil })))

		_, err := i.Render("Home", nil)
		require.NoError(t, err)

		assert.Empty(t, i.Page().Props())
	})

	t.Run("shared props outlive a render", func(t *testing.T) {
		t.Parallel()

		i := newTestInertia(t, http.MethodGet, &inertiatest.RequestConfig{ //nolint:exhaustruct
			Inertia:          true,
			PartialComponent: "Home",
			Whitelist:        []string{"notifications"},
		}, nil)
		i.Share("auth", "ada")
		i.Share("notifications", NewLazyProp(LazyFunc(func(context.Context) (any, error) { return 3, nil })))

		resp, err := i.Render("Other", NewProp("title", "Other"))
		require.NoError(t, err)
		assert.Equal(t,
			`{"component":"Other","props":{"auth":"ada","title":"Other"},"url":"/users","version":null}`,
			string(resp.Body),
		)

		resp, err = i.Render("Home", NewProp("body", "..."))
		require.NoError(t, err)
		assert.Equal(t,
			`{"component":"Home","props":{"auth":"ada","notifications":3},"url":"/users","version":null}`,
			string(resp.Body),
		)
	})
}

func TestInertia_Version(t *testing.T) {
	t.Parallel()

	i := newTestInertia(t, http.MethodGet, nil, nil)

	_, ok := i.Version()
	assert.False(t, ok)

	i.SetVersion("v2")

	version, ok := i.Version()
	assert.True(t, ok)
	assert.Equal(t, "v2", version)
}

func TestInertia_ValidationErrors(t *testing.T) {
	t.Parallel()

	errs := ValidationErrors{
		NewValidationError("name", "The name field is required."),
		NewValidationError("email", "The email must be valid."),
	}

	tests := []struct {
		name     string
		errorBag string
		want     string
	}{
		{
			name: "default error bag",
			want: `{"title":"Create","errors":{"name":"The name field is required.","email":"The email must be valid."}}`,
		},
		{
			name:     "named error bag",
			errorBag: "createUser",
			want:     `{"title":"Create","errors":{"createUser":{"name":"The name field is required.","email":"The email must be valid."}}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			i := newTestInertia(t, http.MethodPost, &inertiatest.RequestConfig{Inertia: true}, nil) //nolint:exhaustruct

			_, err := i.Render("Users/Create", NewProp("title", "Create"), WithValidationErrors(errs, tt.errorBag))
			require.NoError(t, err)

			b, err := i.Page().Props().MarshalJSON()
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(b))
		})
	}
}

func TestInertia_Location(t *testing.T) {
	t.Parallel()

	tests := []struct {
		reqConfig      *inertiatest.RequestConfig
		location       func(i *Inertia) *Response
		expectedHeader map[string]string
		name           string
		expectedStatus int
	}{
		{
			name:           "non-inertia request",
			reqConfig:      &inertiatest.RequestConfig{}, //nolint:exhaustruct
			location:       func(i *Inertia) *Response { return i.Location("/redirect") },
			expectedStatus: http.StatusFound,
			expectedHeader: map[string]string{
				inertiaheader.HeaderLocation:    "/redirect",
				inertiaheader.HeaderContentType: inertiaheader.ContentTypeHTML,
			},
		},
		{
			name:           "inertia request",
			reqConfig:      &inertiatest.RequestConfig{Inertia: true}, //nolint:exhaustruct
			location:       func(i *Inertia) *Response { return i.Location("https://example.org") },
			expectedStatus: http.StatusConflict,
			expectedHeader: map[string]string{
				inertiaheader.HeaderXInertiaLocation: "https://example.org",
				inertiaheader.HeaderLocation:         "",
			},
		},
		{
			name:           "non-inertia request with status",
			reqConfig:      &inertiatest.RequestConfig{}, //nolint:exhaustruct
			location:       func(i *Inertia) *Response { return i.LocationStatus("/moved", http.StatusMovedPermanently) },
			expectedStatus: http.StatusMovedPermanently,
			expectedHeader: map[string]string{
				inertiaheader.HeaderLocation: "/moved",
			},
		},
		{
			name:      "existing response is passed through",
			reqConfig: &inertiatest.RequestConfig{}, //nolint:exhaustruct
			location: func(i *Inertia) *Response {
				resp := newResponse(http.StatusTemporaryRedirect, "text/plain", nil)
				resp.Header.Set(inertiaheader.HeaderLocation, "/elsewhere")

				return i.LocationFrom(resp)
			},
			expectedStatus: http.StatusTemporaryRedirect,
			expectedHeader: map[string]string{
				inertiaheader.HeaderLocation:    "/elsewhere",
				inertiaheader.HeaderContentType: "text/plain",
			},
		},
		{
			name:      "existing response on inertia request",
			reqConfig: &inertiatest.RequestConfig{Inertia: true}, //nolint:exhaustruct
			location: func(i *Inertia) *Response {
				resp := newResponse(http.StatusTemporaryRedirect, "text/plain", nil)
				resp.Header.Set(inertiaheader.HeaderLocation, "/elsewhere")

				return i.LocationFrom(resp)
			},
			expectedStatus: http.StatusConflict,
			expectedHeader: map[string]string{
				inertiaheader.HeaderXInertiaLocation: "/elsewhere",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			i := newTestInertia(t, http.MethodGet, tt.reqConfig, nil)
			resp := tt.location(i)

			w := httptest.NewRecorder()
			require.NoError(t, resp.Write(w))

			assert.Equal(t, tt.expectedStatus, w.Code, "unexpected status code")

			for header, value := range tt.expectedHeader {
				assert.Equal(t, value, w.Header().Get(header), "unexpected header value for %s", header)
			}
		})
	}
}

func TestInertia_Redirect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		method         string
		expectedStatus int
	}{
		{http.MethodGet, http.StatusFound},
		{http.MethodPost, http.StatusSeeOther},
		{http.MethodPut, http.StatusSeeOther},
		{http.MethodDelete, http.StatusSeeOther},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			t.Parallel()

			resp := newTestInertia(t, tt.method, nil, nil).Redirect("/users")

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			assert.Equal(t, "/users", resp.Header.Get(inertiaheader.HeaderLocation))
		})
	}
}

func TestRequestURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		target         string
		forwardedProto string
		want           string
	}{
		{name: "plain", target: "/users?page=2", want: "http://example.com/users?page=2"},
		{name: "absolute target", target: "https://inertia.test/users", want: "https://inertia.test/users"},
		{name: "forwarded proto", target: "/users", forwardedProto: "https, http", want: "https://example.com/users"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.forwardedProto != "" {
				req.Header.Set(inertiaheader.HeaderXForwardedProto, tt.forwardedProto)
			}

			assert.Equal(t, tt.want, requestURL(req))
		})
	}
}

func TestExtractHeaderValueList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		header   string
		expected []string
	}{
		{
			name:     "empty header",
			header:   "",
			expected: nil,
		},
		{
			name:     "single value",
			header:   "test",
			expected: []string{"test"},
		},
		{
			name:     "multiple values",
			header:   "test1,test2,test3",
			expected: []string{"test1", "test2", "test3"},
		},
		{
			name:     "values with whitespace",
			header:   " test1 , test2 , test3 ",
			expected: []string{"test1", "test2", "test3"},
		},
		{
			name:     "values with dots",
			header:   "user.name,user.email,user.age",
			expected: []string{"user.name", "user.email", "user.age"},
		},
		{
			name:     "empty values between commas",
			header:   "test1,,test2",
			expected: []string{"test1", "test2"},
		},
		{
			name:     "only separators and whitespace",
			header:   " , ,",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := extractHeaderValueList(tt.header)
			assert.Equal(t, tt.expected, result, "extracted list should match expected values")
		})
	}
}
