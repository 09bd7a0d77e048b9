// Package modules assembles the public write endpoints of the landing site.
// Every endpoint passes the admission guard before it binds, validates or
// mutates anything.
package modules

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Mountable interface {
	Handle() http.Handler
}

// RouterOptions configures which endpoints to mount.
// Each one is optional and is only mounted if provided.
type RouterOptions struct {
	Checkout   Mountable
	Newsletter Mountable
}

// Router mounts the configured endpoints.
//
//	r := chi.NewRouter()
//	r.Mount("/", modules.Router(modules.RouterOptions{
//		Checkout:   checkoutSvc,
//		Newsletter: newsletterSvc,
//	}))
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()

	if opts.Checkout != nil {
		r.Mount("/checkout", opts.Checkout.Handle())
	}
	if opts.Newsletter != nil {
		r.Mount("/newsletter", opts.Newsletter.Handle())
	}

	return r
}
