package newsletter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/landing/pkg/clock"
	"github.com/dmitrymomot/landing/pkg/logger"
	"github.com/dmitrymomot/landing/pkg/sanitizer"
)

const defaultTimeout = 5 * time.Second

// Observer is notified of every resolution. outcome is "error" on failure.
type Observer interface {
	ObserveResolution(outcome string)
}

// Resolver subscribes identities idempotently.
type Resolver struct {
	store    Store
	clock    clock.Clock
	timeout  time.Duration
	logger   *slog.Logger
	observer Observer
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithTimeout bounds the whole resolution, reads and writes included.
// Zero disables the bound.
func WithTimeout(d time.Duration) ResolverOption {
	return func(r *Resolver) {
		r.timeout = d
	}
}

// WithClock sets the time source for record timestamps.
func WithClock(c clock.Clock) ResolverOption {
	return func(r *Resolver) {
		if c != nil {
			r.clock = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithObserver reports every outcome to o.
func WithObserver(o Observer) ResolverOption {
	return func(r *Resolver) {
		r.observer = o
	}
}

// NewResolver creates a resolver over store.
func NewResolver(store Store, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		store:   store,
		clock:   clock.System(),
		timeout: defaultTimeout,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve ensures email is subscribed. It fails only with ErrEmptyEmail or an
// error wrapping ErrStorage; "already subscribed" in any form is a success.
func (r *Resolver) Resolve(ctx context.Context, email string) (Result, error) {
	email = sanitizer.NormalizeEmail(email)
	if email == "" {
		return Result{}, ErrEmptyEmail
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	outcome, err := r.resolve(ctx, email)
	if err != nil {
		r.observe("error")
		r.logger.ErrorContext(ctx, "newsletter subscription failed",
			logger.Component("newsletter"),
			logger.Email(email),
			logger.Error(err),
		)
		return Result{}, errors.Join(ErrStorage, err)
	}

	r.observe(string(outcome))
	r.logger.InfoContext(ctx, "newsletter subscription resolved",
		logger.Component("newsletter"),
		logger.Email(email),
		slog.String("outcome", string(outcome)),
	)

	return Result{Email: email, Outcome: outcome}, nil
}

func (r *Resolver) resolve(ctx context.Context, email string) (Outcome, error) {
	sub, err := r.store.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, ErrSubscriberNotFound):
		return r.insert(ctx, email)
	case err != nil:
		return "", err
	case sub.Active:
		return OutcomeAlreadyActive, nil
	}

	if err := r.store.Reactivate(ctx, email, r.clock.Now()); err != nil {
		return "", err
	}
	return OutcomeReactivated, nil
}

func (r *Resolver) insert(ctx context.Context, email string) (Outcome, error) {
	res, err := r.store.Insert(ctx, NewSubscriber(email, r.clock.Now()))
	if err != nil {
		return "", err
	}

	switch res {
	case Inserted:
		return OutcomeCreated, nil
	case AlreadyExists:
		return OutcomeConcurrentInsert, nil
	default:
		return "", errors.New("unexpected insert outcome: " + res.String())
	}
}

func (r *Resolver) observe(outcome string) {
	if r.observer != nil {
		r.observer.ObserveResolution(outcome)
	}
}
