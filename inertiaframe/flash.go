package inertiaframe

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/go-json-experiment/json"
	"go.inout.gg/foundations/http/httpcookie"

	"go.inout.gg/inertia/v2"
)

const (
	FlashCookieName = "_inertiaframe"
	FlashCookiePath = "/"
)

type flashCtx struct{}

var kFlashCtx = flashCtx{} //nolint:gochecknoglobals

// flash carries the outcome of a failed submission over a redirect
// to the page that renders it.
type flash struct {
	Errors  []flashError `json:"errors,omitempty"`
	Bag     string       `json:"bag,omitempty"`
	Referer string       `json:"referer,omitempty"`
}

type flashError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func newFlash(errorer inertia.ValidationErrorer, bag, referer string) *flash {
	errs := errorer.ValidationErrors()

	f := &flash{Errors: make([]flashError, 0, len(errs)), Bag: bag, Referer: referer}
	for _, err := range errs {
		f.Errors = append(f.Errors, flashError{Field: err.Field(), Message: err.Error()})
	}

	return f
}

// flashFromRequest decodes the flash cookie of r. A request without
// the cookie yields an empty flash.
//
// The decoded flash is cached on r, so consumed errors stay consumed
// for the rest of the request.
func flashFromRequest(r *http.Request) (*flash, error) {
	if f, ok := r.Context().Value(kFlashCtx).(*flash); ok && f != nil {
		return f, nil
	}

	f := &flash{} //nolint:exhaustruct

	if val := httpcookie.Get(r, FlashCookieName); val != "" {
		b, err := base64.RawURLEncoding.DecodeString(val)
		if err != nil {
			return nil, fmt.Errorf("inertiaframe: malformed flash cookie: %w", err)
		}

		if err := json.Unmarshal(b, f); err != nil {
			return nil, fmt.Errorf("inertiaframe: failed to decode flash: %w", err)
		}
	}

	*r = *r.WithContext(context.WithValue(r.Context(), kFlashCtx, f))

	return f, nil
}

// take returns the flashed validation errors with their error bag
// and empties the flash. It returns nil if nothing was flashed.
func (f *flash) take() (inertia.ValidationErrors, string) {
	if len(f.Errors) == 0 {
		return nil, ""
	}

	errs := make(inertia.ValidationErrors, len(f.Errors))
	for i, e := range f.Errors {
		errs[i] = inertia.NewValidationError(e.Field, e.Message)
	}

	bag := f.Bag
	f.Errors, f.Bag = nil, ""

	return errs, bag
}

// save sends f to the client as the flash cookie.
func (f *flash) save(w http.ResponseWriter) error {
	b, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("inertiaframe: failed to encode flash: %w", err)
	}

	//nolint:exhaustruct
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(b),
		Path:     FlashCookiePath,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

func clearFlash(w http.ResponseWriter, r *http.Request) {
	httpcookie.Delete(w, r, FlashCookieName)
}
