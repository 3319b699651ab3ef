package main

import (
	"context"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/form/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"go.inout.gg/inertia/v2"
	"go.inout.gg/inertia/v2/contrib/inertiavalidationerrors"
	"go.inout.gg/inertia/v2/inertiaframe"
	"go.inout.gg/inertia/v2/inertiaprops"
)

const docsURL = "https://inertiajs.com"

type user struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	ID    int    `json:"id"`
}

// store is an in-memory user store.
type store struct {
	users  []user
	nextID int
	mu     sync.RWMutex
}

func newStore() *store {
	//nolint:exhaustruct
	return &store{nextID: 1}
}

func (s *store) list() []user {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.users)
}

func (s *store) add(name, email string) user {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := user{ID: s.nextID, Name: name, Email: email}
	s.nextID++
	s.users = append(s.users, u)

	return u
}

func (s *store) update(id int, name, email string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.users, func(u user) bool { return u.ID == id })
	if i < 0 {
		return false
	}

	s.users[i].Name, s.users[i].Email = name, email

	return true
}

func (s *store) remove(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = slices.DeleteFunc(s.users, func(u user) bool { return u.ID == id })
}

type userForm struct {
	Name  string `form:"name"  json:"name"`
	Email string `form:"email" json:"email"`
}

func (f *userForm) validate() inertiavalidationerrors.MapError {
	errs := inertiavalidationerrors.MapError{}

	if strings.TrimSpace(f.Name) == "" {
		errs["name"] = "The name field is required."
	}

	if !strings.Contains(f.Email, "@") {
		errs["email"] = "The email must be a valid email address."
	}

	if errs.Len() == 0 {
		return nil
	}

	return errs
}

type homeProps struct {
	Title     string           `inertia:"title"`
	Stats     inertia.LazyFunc `inertia:"stats,lazy"`
	UserCount int              `inertia:"userCount"`
}

type handler struct {
	store   *store
	decoder *form.Decoder
}

func newRouter(renderer *inertia.Renderer, s *store, logger zerolog.Logger) http.Handler {
	h := &handler{store: s, decoder: form.NewDecoder()}

	r := chi.NewRouter()
	r.Use(hlog.NewHandler(logger))
	r.Use(hlog.RequestIDHandler("req_id", "X-Request-Id"))
	r.Use(hlog.AccessHandler(accessLog))
	r.Use(inertia.MustNewMiddleware(renderer))
	r.Use(shareProps)

	r.Get("/", h.home)
	r.Get("/docs", h.docs)
	r.Get("/users", h.listUsers)
	r.Put("/users/{id}", h.updateUser)
	r.Delete("/users/{id}", h.deleteUser)

	mux := chiMux{r}
	opts := &inertiaframe.MountOpts{ //nolint:exhaustruct
		Validator:   inertiaframe.ValidatorFunc(validate),
		FormDecoder: h.decoder,
	}

	inertiaframe.Mount(mux, &createUserEndpoint{}, opts)
	inertiaframe.Mount(mux, &storeUserEndpoint{store: s}, opts)

	return r
}

// chiMux mounts inertiaframe endpoints on a chi router.
type chiMux struct{ chi.Router }

func (m chiMux) Handle(pattern string, h http.Handler) {
	method, path, _ := strings.Cut(pattern, " ")
	m.Method(method, path, h)
}

func validate(v any) error {
	if f, ok := v.(*userForm); ok {
		if errs := f.validate(); errs != nil {
			return errs
		}
	}

	return nil
}

type createUserPage struct {
	User userForm `inertia:"user"`
}

func (*createUserPage) Component() string { return "Users/Create" }

type createUserEndpoint struct{}

func (*createUserEndpoint) Meta() *inertiaframe.Meta {
	return &inertiaframe.Meta{Method: http.MethodGet, Path: "/users/create"}
}

func (*createUserEndpoint) Execute(context.Context, *inertiaframe.Request[struct{}]) (*inertiaframe.Response, error) {
	return inertiaframe.NewResponse(&createUserPage{User: userForm{Name: "", Email: ""}}, nil), nil
}

type storeUserEndpoint struct {
	store *store
}

func (*storeUserEndpoint) Meta() *inertiaframe.Meta {
	return &inertiaframe.Meta{Method: http.MethodPost, Path: "/users"}
}

func (e *storeUserEndpoint) Execute(ctx context.Context, req *inertiaframe.Request[userForm]) (*inertiaframe.Response, error) {
	u := e.store.add(req.Message.Name, req.Message.Email)
	zerolog.Ctx(ctx).Info().Int("user_id", u.ID).Msg("user created")

	return inertiaframe.NewRedirectResponse("/users"), nil
}

func accessLog(r *http.Request, status, size int, duration time.Duration) {
	logger := hlog.FromRequest(r)

	event := logger.Info()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	} else if status >= http.StatusBadRequest {
		event = logger.Warn()
	}

	event.
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", duration).
		Bool("inertia", r.Header.Get("X-Inertia") != "").
		Msg("http_request")
}

// shareProps shares props with every page.
func shareProps(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := inertia.Share(r, "appName", "Inertia Demo"); err != nil {
			hlog.FromRequest(r).Error().Err(err).Msg("failed to share props")
		}

		next.ServeHTTP(w, r)
	})
}

func (h *handler) home(w http.ResponseWriter, r *http.Request) {
	props, err := inertia.ParseStruct(&homeProps{
		Title:     "Welcome",
		UserCount: len(h.store.list()),
		Stats: func(context.Context) (any, error) {
			return map[string]any{"users": len(h.store.list())}, nil
		},
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.render(w, r, "Home", props)
}

func (h *handler) docs(w http.ResponseWriter, r *http.Request) {
	inertia.Location(w, r, docsURL)
}

func (h *handler) listUsers(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("q")

	props := inertiaprops.Map{
		"filter": filter,
		"users": func() any {
			return slices.DeleteFunc(h.store.list(), func(u user) bool {
				return !strings.Contains(u.Name, filter)
			})
		},
	}.Props()

	props = append(props, inertia.Optional("total", inertia.LazyFunc(func(context.Context) (any, error) {
		return len(h.store.list()), nil
	})))

	h.render(w, r, "Users/Index", props)
}

func (h *handler) updateUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	f, ok := h.decodeForm(w, r)
	if !ok {
		return
	}

	if errs := f.validate(); errs != nil {
		h.render(w, r, "Users/Edit", inertia.Props{
			inertia.NewProp("id", id),
			inertia.NewProp("user", f),
		}, inertia.WithValidationErrors(errs, inertia.ErrorBagFromRequest(r)))

		return
	}

	if !h.store.update(id, f.Name, f.Email) {
		http.NotFound(w, r)
		return
	}

	// A plain 302 is turned into a 303 by the middleware for PUT requests.
	http.Redirect(w, r, "/users", http.StatusFound)
}

func (h *handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	h.store.remove(id)

	inertia.Redirect(w, r, "/users")
}

func (h *handler) decodeForm(w http.ResponseWriter, r *http.Request) (*userForm, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return nil, false
	}

	var f userForm
	if err := h.decoder.Decode(&f, r.PostForm); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return nil, false
	}

	return &f, true
}

func (h *handler) render(w http.ResponseWriter, r *http.Request, component string, props inertia.Proper, opts ...inertia.RenderOption) {
	if err := inertia.Render(w, r, component, props, opts...); err != nil {
		h.fail(w, r, err)
	}
}

func (h *handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	hlog.FromRequest(r).Error().Err(err).Msg("failed to render page")
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
