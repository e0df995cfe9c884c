// Package httpmiddleware provides the HTTP middleware chain for the API
// server: panic recovery, request ids, CORS, rate limiting, and request
// logging.
package httpmiddleware

import "net/http"

// Middleware wraps an http.Handler with additional behaviour.
type Middleware func(http.Handler) http.Handler

// Wrap applies the given middlewares to h. The first middleware in the list
// is the outermost one, i.e. it sees the request first.
func Wrap(h http.Handler, mw ...Middleware) http.Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return h
}
