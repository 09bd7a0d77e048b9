package clientip

import "net/http"

// Middleware stores the client IP in the request context, trusting the given
// headers. It is shorthand for New(trustedHeaders...).Middleware.
func Middleware(trustedHeaders ...string) func(http.Handler) http.Handler {
	return New(trustedHeaders...).Middleware
}
