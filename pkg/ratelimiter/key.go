package ratelimiter

import (
	"net/http"

	"github.com/dmitrymomot/landing/pkg/clientip"
)

// UnknownClient is the identifier used when a request carries no usable
// client address. All such requests share one quota.
const UnknownClient = "unknown"

// KeyFunc extracts the identifier a request is counted against.
type KeyFunc func(*http.Request) string

// ClientIP identifies requests by client network address. It prefers the
// address stored by clientip.Middleware and falls back to the remote address.
func ClientIP(r *http.Request) string {
	if ip := clientip.FromContext(r.Context()); ip != "" {
		return ip
	}
	return clientip.GetIP(r)
}
