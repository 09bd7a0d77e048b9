package billing

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/dmitrymomot/landing/pkg/logger"
)

const defaultTimeout = 10 * time.Second

// Observer is notified of every session attempt.
// result is "created", "configuration_error" or "provider_error".
type Observer interface {
	ObserveSession(result string)
}

// Initiator starts checkout sessions.
type Initiator struct {
	provider Provider
	timeout  time.Duration
	logger   *slog.Logger
	observer Observer
}

// InitiatorOption configures an Initiator.
type InitiatorOption func(*Initiator)

// WithTimeout bounds the provider call. Zero leaves only the caller's deadline.
func WithTimeout(d time.Duration) InitiatorOption {
	return func(i *Initiator) {
		i.timeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) InitiatorOption {
	return func(i *Initiator) {
		if l != nil {
			i.logger = l
		}
	}
}

// WithObserver reports every attempt to o.
func WithObserver(o Observer) InitiatorOption {
	return func(i *Initiator) {
		i.observer = o
	}
}

// NewInitiator creates an initiator over provider.
func NewInitiator(provider Provider, opts ...InitiatorOption) *Initiator {
	i := &Initiator{
		provider: provider,
		timeout:  defaultTimeout,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// CreateSession requests one checkout session for email and productReference.
// It never retries. Errors wrap ErrConfiguration or ErrProvider.
func (i *Initiator) CreateSession(ctx context.Context, email, productReference string, redirect RedirectTargets) (Session, error) {
	productReference = strings.TrimSpace(productReference)
	if productReference == "" || i.provider == nil {
		i.observe("configuration_error")
		i.logger.ErrorContext(ctx, "checkout product reference is not configured",
			logger.Component("billing"),
		)
		return Session{}, ErrConfiguration
	}
	if email == "" {
		return Session{}, ErrEmptyEmail
	}

	if i.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.timeout)
		defer cancel()
	}

	start := time.Now()
	session, err := i.provider.CreateSession(ctx, SessionRequest{
		Email:            email,
		ProductReference: productReference,
		Redirect:         redirect,
	})
	if err == nil && session.URL == "" {
		err = ErrNoCheckoutURL
	}
	if err != nil {
		i.observe("provider_error")
		i.logger.ErrorContext(ctx, "checkout session failed",
			logger.Component("billing"),
			logger.Email(email),
			logger.Duration(time.Since(start)),
			logger.Error(err),
		)
		return Session{}, errors.Join(ErrProvider, err)
	}

	i.observe("created")
	i.logger.InfoContext(ctx, "checkout session created",
		logger.Component("billing"),
		logger.Email(email),
		logger.SessionID(session.ID),
		logger.Duration(time.Since(start)),
	)
	return session, nil
}

func (i *Initiator) observe(result string) {
	if i.observer != nil {
		i.observer.ObserveSession(result)
	}
}
