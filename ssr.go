package inertia

import (
	"net/http"

	"go.inout.gg/inertia/v2/internal/inertiassr"
)

type (
	// SSRClient communicates with a server-side rendering service to pre-render Inertia pages.
	SSRClient = inertiassr.SSRClient

	// SSRTemplateData contains the HTML head and body sections returned by SSR rendering.
	SSRTemplateData = inertiassr.SSRTemplateData
)

// NewHTTPSSRClient creates an HTTP-based SSR client that sends render requests to the specified URL.
// If client is nil, http.DefaultClient is used.
func NewHTTPSSRClient(url string, client *http.Client) SSRClient {
	return inertiassr.NewHTTPSSRClient(url, client)
}
