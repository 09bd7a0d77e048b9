package ratelimiter

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrymomot/landing/pkg/logger"
)

// Observer is notified of every admission decision.
type Observer interface {
	ObserveAdmission(policy string, allowed bool)
}

// MiddlewareOption configures middleware behavior.
type MiddlewareOption func(*middlewareConfig)

type middlewareConfig struct {
	onLimitReached func(w http.ResponseWriter, r *http.Request, result *Result)
	onError        func(w http.ResponseWriter, r *http.Request, err error)
	observer       Observer
	logger         *slog.Logger
}

// WithOnLimitReached sets the handler for denied requests.
func WithOnLimitReached(fn func(w http.ResponseWriter, r *http.Request, result *Result)) MiddlewareOption {
	return func(c *middlewareConfig) {
		if fn != nil {
			c.onLimitReached = fn
		}
	}
}

// WithOnError sets the handler for store failures. The request is not
// admitted when the store cannot answer.
func WithOnError(fn func(w http.ResponseWriter, r *http.Request, err error)) MiddlewareOption {
	return func(c *middlewareConfig) {
		if fn != nil {
			c.onError = fn
		}
	}
}

// WithObserver reports each decision to o.
func WithObserver(o Observer) MiddlewareOption {
	return func(c *middlewareConfig) {
		c.observer = o
	}
}

// WithLogger sets the logger used for denials and store failures.
func WithLogger(l *slog.Logger) MiddlewareOption {
	return func(c *middlewareConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// Middleware admits requests under policy, keyed by keyFunc.
// It panics if keyFunc is nil or policy is invalid.
func Middleware(limiter Admitter, policy Policy, keyFunc KeyFunc, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	if limiter == nil {
		panic("ratelimiter.Middleware: limiter is required")
	}
	if keyFunc == nil {
		panic("ratelimiter.Middleware: keyFunc is required")
	}
	if err := policy.Validate(); err != nil {
		panic("ratelimiter.Middleware: " + err.Error())
	}

	cfg := &middlewareConfig{
		onLimitReached: func(w http.ResponseWriter, r *http.Request, result *Result) {
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
		},
		onError: func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		},
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyFunc(r)
			if key == "" {
				key = UnknownClient
			}

			result, err := limiter.Allow(r.Context(), policy, key)
			if err != nil {
				cfg.logger.ErrorContext(r.Context(), "admission check failed",
					logger.Policy(policy.Name),
					logger.Error(err),
				)
				cfg.onError(w, r, err)
				return
			}

			if cfg.observer != nil {
				cfg.observer.ObserveAdmission(policy.Name, result.Allowed)
			}

			setHeaders(w, result)

			if !result.Allowed {
				cfg.logger.WarnContext(r.Context(), "request rate limited",
					logger.Policy(policy.Name),
					logger.ClientIP(key),
				)
				w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(result.RetryAfter)))
				cfg.onLimitReached(w, r, result)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func setHeaders(w http.ResponseWriter, result *Result) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
}

// retryAfterSeconds rounds up and never returns less than one second.
func retryAfterSeconds(d time.Duration) int {
	secs := int((d + time.Second - 1) / time.Second)
	return max(1, secs)
}
