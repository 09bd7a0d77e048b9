// Package checkout serves POST /checkout: it validates the buyer's email and
// asks the payment provider for a hosted checkout session.
package checkout

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/landing/handler"
	"github.com/dmitrymomot/landing/modules"
	"github.com/dmitrymomot/landing/pkg/billing"
	"github.com/dmitrymomot/landing/pkg/binder"
)

// SessionCreator is satisfied by *billing.Initiator.
type SessionCreator interface {
	CreateSession(ctx context.Context, email, productReference string, redirect billing.RedirectTargets) (billing.Session, error)
}

type Config struct {
	ProductReference string
	Redirect         billing.RedirectTargets
	MaxBodyBytes     int64 // Zero uses binder.DefaultMaxJSONSize
}

type Service struct {
	cfg       Config
	sessions  SessionCreator
	admission modules.Admission
	responder *handler.ErrorResponder
}

func NewService(
	cfg Config,
	sessions SessionCreator,
	admission modules.Admission,
	responder *handler.ErrorResponder,
) *Service {
	if responder == nil {
		responder = handler.NewErrorResponder(nil, nil)
	}
	return &Service{
		cfg:       cfg,
		sessions:  sessions,
		admission: admission,
		responder: responder,
	}
}

func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	r.MethodNotAllowed(s.responder.MethodNotAllowed)

	// Only writes consume quota.
	r.With(s.admission.Middleware(s.responder)).Post("/", handler.Wrap(s.checkout,
		handler.WithBinder[handler.Context, Request](binder.JSON(binder.WithMaxBodySize(s.cfg.MaxBodyBytes))),
		handler.WithErrorHandler[handler.Context, Request](s.responder.Handler()),
	))

	return r
}

type Request struct {
	Email string `json:"email"`
}

type Response struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

func (s *Service) checkout(ctx handler.Context, req Request) handler.Response {
	email, err := modules.NormalizeEmail(req.Email)
	if err != nil {
		return handler.Error(err)
	}

	session, err := s.sessions.CreateSession(ctx, email, s.cfg.ProductReference, s.cfg.Redirect)
	if err != nil {
		return handler.Error(err)
	}

	return handler.JSON(Response{SessionID: session.ID, URL: session.URL})
}
