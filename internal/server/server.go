// package server contains the loopback HTTP plumbing for the OAuth login flow
package server

import (
	"net/http"
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// Handler is an [http.Handler] that knows which routes it serves, so the
// router can register it without external route tables.
type Handler interface {
	http.Handler
	Routes() []string
}

// Router registers handlers and middleware for the callback listener.
type Router interface {
	Use(middleware ...Middleware)
	Handler(handler Handler)
	ServeHTTP(w http.ResponseWriter, r *http.Request)
}
