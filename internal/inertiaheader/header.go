package inertiaheader

const (
	HeaderXInertia                 = "X-Inertia"                   // client/server
	HeaderXInertiaVersion          = "X-Inertia-Version"           // client
	HeaderXInertiaLocation         = "X-Inertia-Location"          // server, redirect URL
	HeaderXInertiaPartialData      = "X-Inertia-Partial-Data"      // client, whitelist
	HeaderXInertiaPartialComponent = "X-Inertia-Partial-Component" // client
	HeaderXInertiaErrorBag         = "X-Inertia-Error-Bag"         // client

	HeaderVary            = "Vary"
	HeaderLocation        = "Location"
	HeaderContentType     = "Content-Type"
	HeaderContentLength   = "Content-Length"
	HeaderReferer         = "Referer"
	HeaderXForwardedProto = "X-Forwarded-Proto"
)

const (
	ContentTypeHTML = "text/html; charset=UTF-8"
	ContentTypeJSON = "application/json"
)
