// Package ratelimiter implements fixed-window admission control for public
// write endpoints.
//
// Every identifier (typically the client network address) owns at most one
// live window at a time. The first request of a window creates it with a count
// of one; each admitted request increments the count until the limit is reached,
// after which requests are denied without mutating state. Once the window's
// reset time passes, the next request opens a fresh window.
//
// # Basic Usage
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//
//	limiter, err := ratelimiter.New(store)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	policy := ratelimiter.Policy{Name: "checkout", Limit: 5, Window: time.Minute}
//
//	result, err := limiter.Allow(ctx, policy, "1.2.3.4")
//	if err != nil {
//		return err
//	}
//	if !result.Allowed {
//		// back off for result.RetryAfter
//	}
//
// Limits may also be supplied per call:
//
//	result, err := limiter.Admit(ctx, "newsletter:1.2.3.4", 5, time.Minute)
//
// # Stores
//
// MemoryStore keeps windows in a sharded map. Each shard has its own mutex, so
// a read-modify-write on one identifier is atomic while identifiers hashed to
// different shards never contend. Memory is bounded twice: a per-shard capacity
// evicts the least recently used window on insert, and a background sweeper
// drops expired windows on a fixed interval. Neither mechanism runs on the
// request path by chance; both are deterministic.
//
// RedisStore implements the same contract with a Lua script so several
// processes can share one quota.
//
// # HTTP Middleware
//
//	mw := ratelimiter.Middleware(limiter, policy, ratelimiter.ClientIP,
//		ratelimiter.WithOnLimitReached(func(w http.ResponseWriter, r *http.Request, res *ratelimiter.Result) {
//			http.Error(w, "slow down", http.StatusTooManyRequests)
//		}),
//	)
//
// The middleware sets X-RateLimit-Limit, X-RateLimit-Remaining and
// X-RateLimit-Reset on every response and Retry-After on denials.
//
// # Error Types
//
//	if errors.Is(err, ratelimiter.ErrInvalidWindow) {
//		// programming error: window must be positive
//	}
//	if errors.Is(err, ratelimiter.ErrStoreUnavailable) {
//		// backing store failed; the request was not admitted
//	}
package ratelimiter
