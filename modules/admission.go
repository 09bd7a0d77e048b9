package modules

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/landing/handler"
	"github.com/dmitrymomot/landing/pkg/ratelimiter"
)

// Admission describes the quota an endpoint is guarded by.
type Admission struct {
	Limiter  ratelimiter.Admitter
	Policy   ratelimiter.Policy
	KeyFunc  ratelimiter.KeyFunc // Defaults to ratelimiter.ClientIP
	Observer ratelimiter.Observer
	Logger   *slog.Logger
}

// Middleware returns the admission guard. Denials render as 429
// quota_exceeded. Store failures render as 500 and the request is not
// admitted. It panics if Limiter is nil or Policy is invalid.
func (a Admission) Middleware(responder *handler.ErrorResponder) func(http.Handler) http.Handler {
	if responder == nil {
		responder = handler.NewErrorResponder(a.Logger, nil)
	}
	keyFunc := a.KeyFunc
	if keyFunc == nil {
		keyFunc = ratelimiter.ClientIP
	}

	return ratelimiter.Middleware(a.Limiter, a.Policy, keyFunc,
		ratelimiter.WithObserver(a.Observer),
		ratelimiter.WithLogger(a.Logger),
		ratelimiter.WithOnLimitReached(func(w http.ResponseWriter, r *http.Request, _ *ratelimiter.Result) {
			responder.Respond(w, r, ratelimiter.ErrRateLimited)
		}),
		ratelimiter.WithOnError(func(w http.ResponseWriter, r *http.Request, err error) {
			responder.Respond(w, r, err)
		}),
	)
}
