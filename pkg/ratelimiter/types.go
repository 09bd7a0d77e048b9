package ratelimiter

import (
	"fmt"
	"time"
)

// MinWindow is the shortest enforceable window. Stores keep expiry in
// whole milliseconds.
const MinWindow = time.Millisecond

// Policy names a quota and the fixed window it applies to.
// Name namespaces keys so several endpoints can share a single store
// without sharing a quota.
type Policy struct {
	Name   string
	Limit  int
	Window time.Duration
}

// Validate reports whether the policy can be enforced.
// A zero limit is valid and denies every request.
func (p Policy) Validate() error {
	if p.Limit < 0 {
		return fmt.Errorf("%w: must not be negative, got %d", ErrInvalidLimit, p.Limit)
	}
	return validateWindow(p.Window)
}

// Key returns the store key for identifier under this policy.
func (p Policy) Key(identifier string) string {
	if p.Name == "" {
		return identifier
	}
	return p.Name + ":" + identifier
}

// Window is the state of a live fixed window.
type Window struct {
	Count   int       // Admitted requests in this window
	ResetAt time.Time // Window is live while now < ResetAt
}

// Result contains the outcome of an admission check.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int           // Slots left in the current window
	ResetAt    time.Time     // When the current window expires
	RetryAfter time.Duration // Zero when allowed
}

func validateWindow(window time.Duration) error {
	if window < MinWindow {
		return fmt.Errorf("%w: must be at least %v, got %v", ErrInvalidWindow, MinWindow, window)
	}
	return nil
}
