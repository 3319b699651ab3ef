// Package inertia implements the server side of the Inertia.js protocol.
//
// A Renderer acts as a factory of request-scoped Inertia engines. The
// middleware created by NewMiddleware attaches a fresh engine to every
// request, post-processes Inertia responses (protocol headers, asset version
// check, redirect rewriting) and leaves classic full-page requests untouched.
//
// Handlers render pages through the engine:
//
//	engine, _ := inertia.FromContext(r.Context())
//	resp, err := engine.Render("Users/Index", inertia.Props{
//		inertia.NewProp("users", users),
//		inertia.Optional("stats", inertia.LazyFunc(loadStats)),
//	})
//
// or through the package-level Render helper.
//
// For detailed protocol documentation, visit https://inertiajs.com/the-protocol
package inertia

import "go.inout.gg/foundations/debug"

//nolint:gochecknoglobals
var d = debug.Debuglog("inertia")
