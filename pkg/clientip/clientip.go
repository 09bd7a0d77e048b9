package clientip

import (
	"context"
	"net"
	"net/http"
	"net/textproto"
	"strings"
)

// Common proxy headers. None are trusted unless passed to New.
const (
	HeaderCFConnectingIP = "CF-Connecting-IP"
	HeaderDOConnectingIP = "DO-Connecting-IP"
	HeaderXForwardedFor  = "X-Forwarded-For"
	HeaderXRealIP        = "X-Real-IP"
)

// Resolver determines the client IP of a request.
//
// Headers are consulted in the configured order; the first one holding a
// valid address wins. Only list headers a proxy in front of the service
// overwrites: any other header is client-controlled and would let callers
// choose their own rate-limit identity. For X-Forwarded-For the rightmost
// valid entry is used, since that is the one appended by the nearest proxy.
type Resolver struct {
	headers []string
}

// New creates a Resolver trusting the given headers. With no headers only
// the connection's remote address is used.
func New(trustedHeaders ...string) *Resolver {
	headers := make([]string, 0, len(trustedHeaders))
	for _, h := range trustedHeaders {
		if h = strings.TrimSpace(h); h != "" {
			headers = append(headers, textproto.CanonicalMIMEHeaderKey(h))
		}
	}
	return &Resolver{headers: headers}
}

// TrustedHeaders returns the configured headers in priority order.
func (res *Resolver) TrustedHeaders() []string {
	return append([]string(nil), res.headers...)
}

// IP returns the normalized client address, or "" if none is usable.
func (res *Resolver) IP(r *http.Request) string {
	for _, h := range res.headers {
		value := r.Header.Get(h)
		if value == "" {
			continue
		}

		if h == HeaderXForwardedFor {
			if ip := lastValid(value); ip != "" {
				return ip
			}
			continue
		}

		if ip := parseIP(value); ip != "" {
			return ip
		}
	}

	return remoteIP(r.RemoteAddr)
}

type ipKey struct{}

// FromContext returns the address stored by Middleware, or "" outside it.
func FromContext(ctx context.Context) string {
	ip, _ := ctx.Value(ipKey{}).(string)
	return ip
}

// Middleware stores the resolved IP in the request context.
func (res *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), ipKey{}, res.IP(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetIP returns the client address from the connection only, ignoring headers.
func GetIP(r *http.Request) string {
	return remoteIP(r.RemoteAddr)
}

func remoteIP(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		// RemoteAddr without a port
		return parseIP(addr)
	}
	return parseIP(host)
}

// lastValid returns the rightmost parseable address of a comma-separated list.
func lastValid(list string) string {
	parts := strings.Split(list, ",")
	for i := len(parts) - 1; i >= 0; i-- {
		if ip := parseIP(parts[i]); ip != "" {
			return ip
		}
	}
	return ""
}

// parseIP validates and normalizes an IP address string.
// Returns empty string if the IP is invalid.
func parseIP(ipStr string) string {
	ipStr = strings.TrimSpace(ipStr)
	if ipStr == "" {
		return ""
	}

	ip := net.ParseIP(ipStr)
	if ip == nil {
		return ""
	}

	return ip.String()
}
