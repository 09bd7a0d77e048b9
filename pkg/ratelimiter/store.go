package ratelimiter

import (
	"context"
	"time"
)

// Store persists fixed windows. Implementations must make Take atomic with
// respect to concurrent calls for the same key.
type Store interface {
	// Take admits one request for key. If no window is live, a new one is
	// opened with Count = 1 and ResetAt = now + window. If a live window has
	// Count < limit, Count is incremented. Otherwise the request is denied and
	// state is left untouched. The returned Window reflects state after the call.
	Take(ctx context.Context, key string, limit int, window time.Duration) (w Window, admitted bool, err error)

	// Peek returns the live window for key without modifying it.
	// ok is false when no window is live.
	Peek(ctx context.Context, key string) (w Window, ok bool, err error)

	// Reset discards the window for key.
	Reset(ctx context.Context, key string) error
}
