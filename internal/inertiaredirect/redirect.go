package inertiaredirect

import (
	"net/http"
	"slices"

	"go.inout.gg/foundations/debug"
)

//nolint:gochecknoglobals
var d = debug.Debuglog("inertia/redirect")

// https://inertiajs.com/redirects#303-response-code
//
//nolint:gochecknoglobals
var seeOtherMethods = []string{http.MethodPatch, http.MethodPut, http.MethodDelete}

// StatusCode returns the status code for redirecting a request made with method.
//
// GET requests are redirected with 302 Found, everything else with
// 303 See Other so the client follows up with a GET.
func StatusCode(method string) int {
	if method == http.MethodGet {
		return http.StatusFound
	}

	return http.StatusSeeOther
}

// SeeOther reports whether a 302 Found answering a request made with method
// must be rewritten to 303 See Other.
func SeeOther(method string, statusCode int) bool {
	return statusCode == http.StatusFound && slices.Contains(seeOtherMethods, method)
}

// Redirect redirects the client to the specified URL.
//
// It follows the redirect specification described here: https://inertiajs.com/redirects
func Redirect(w http.ResponseWriter, r *http.Request, url string) {
	statusCode := StatusCode(r.Method)

	d("Redirecting to %s with status code %d", url, statusCode)

	http.Redirect(w, r, url, statusCode)
}
