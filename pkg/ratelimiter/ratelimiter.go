package ratelimiter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrymomot/landing/pkg/clock"
)

// Admitter decides whether a request identified by identifier may proceed
// under policy.
type Admitter interface {
	Allow(ctx context.Context, policy Policy, identifier string) (*Result, error)
}

// FixedWindow is a fixed-window admission controller backed by a Store.
type FixedWindow struct {
	store Store
	clock clock.Clock
}

// Option configures a FixedWindow.
type Option func(*FixedWindow)

// WithLimiterClock sets the time source used to compute RetryAfter.
// It should match the store's clock.
func WithLimiterClock(c clock.Clock) Option {
	return func(fw *FixedWindow) {
		if c != nil {
			fw.clock = c
		}
	}
}

// New creates a fixed-window admission controller.
func New(store Store, opts ...Option) (*FixedWindow, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}

	fw := &FixedWindow{
		store: store,
		clock: clock.System(),
	}
	for _, opt := range opts {
		opt(fw)
	}
	return fw, nil
}

// Admit checks one request for key against limit requests per window.
// A limit of zero denies without touching the store.
func (fw *FixedWindow) Admit(ctx context.Context, key string, limit int, window time.Duration) (*Result, error) {
	if key == "" {
		return nil, ErrKeyRequired
	}
	if limit < 0 {
		return nil, fmt.Errorf("%w: must not be negative, got %d", ErrInvalidLimit, limit)
	}
	if err := validateWindow(window); err != nil {
		return nil, err
	}

	now := fw.clock.Now()

	if limit == 0 {
		return &Result{
			Allowed:    false,
			Limit:      0,
			Remaining:  0,
			ResetAt:    now.Add(window),
			RetryAfter: window,
		}, nil
	}

	w, admitted, err := fw.store.Take(ctx, key, limit, window)
	if err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	res := &Result{
		Allowed:   admitted,
		Limit:     limit,
		Remaining: max(0, limit-w.Count),
		ResetAt:   w.ResetAt,
	}
	if !admitted {
		res.RetryAfter = max(0, w.ResetAt.Sub(now))
	}
	return res, nil
}

// Allow checks one request for identifier under policy.
func (fw *FixedWindow) Allow(ctx context.Context, policy Policy, identifier string) (*Result, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	if identifier == "" {
		return nil, ErrKeyRequired
	}
	return fw.Admit(ctx, policy.Key(identifier), policy.Limit, policy.Window)
}

// Status returns the current state for identifier without consuming a slot.
func (fw *FixedWindow) Status(ctx context.Context, policy Policy, identifier string) (*Result, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	if identifier == "" {
		return nil, ErrKeyRequired
	}

	w, ok, err := fw.store.Peek(ctx, policy.Key(identifier))
	if err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	now := fw.clock.Now()
	if !ok {
		return &Result{
			Allowed:   policy.Limit > 0,
			Limit:     policy.Limit,
			Remaining: policy.Limit,
			ResetAt:   now.Add(policy.Window),
		}, nil
	}

	res := &Result{
		Allowed:   w.Count < policy.Limit,
		Limit:     policy.Limit,
		Remaining: max(0, policy.Limit-w.Count),
		ResetAt:   w.ResetAt,
	}
	if !res.Allowed {
		res.RetryAfter = max(0, w.ResetAt.Sub(now))
	}
	return res, nil
}

// Reset clears the window for identifier under policy.
func (fw *FixedWindow) Reset(ctx context.Context, policy Policy, identifier string) error {
	if identifier == "" {
		return ErrKeyRequired
	}
	if err := fw.store.Reset(ctx, policy.Key(identifier)); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}
