// Package clientip resolves the network identifier of an HTTP client.
//
// By default only the connection's remote address is used. Deployments
// behind a reverse proxy or CDN list the headers that proxy sets:
//
//	r.Use(clientip.Middleware(clientip.HeaderCFConnectingIP, clientip.HeaderXForwardedFor))
//
//	ip := clientip.FromContext(r.Context())
//
// Addresses are normalized with net.ParseIP, so "::ffff:1.2.3.4" and
// "1.2.3.4" map to the same identifier. Malformed values are skipped.
package clientip
