// Package newsletter serves POST /newsletter. Every way an address can
// already be subscribed answers the same 200 response.
package newsletter

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/landing/handler"
	"github.com/dmitrymomot/landing/modules"
	"github.com/dmitrymomot/landing/pkg/binder"
	subscriptions "github.com/dmitrymomot/landing/pkg/newsletter"
)

// SubscribedMessageKey is the catalog key of the success message.
const SubscribedMessageKey = "newsletter.subscribed"

const defaultSubscribedMessage = "You are subscribed to our newsletter."

// Resolver is satisfied by *newsletter.Resolver.
type Resolver interface {
	Resolve(ctx context.Context, email string) (subscriptions.Result, error)
}

type Config struct {
	MaxBodyBytes int64 // Zero uses binder.DefaultMaxJSONSize
}

type Service struct {
	cfg       Config
	resolver  Resolver
	admission modules.Admission
	responder *handler.ErrorResponder
	messages  handler.Messages
}

// NewService creates the endpoint. messages may be nil, in which case the
// success message is English.
func NewService(
	cfg Config,
	resolver Resolver,
	admission modules.Admission,
	responder *handler.ErrorResponder,
	messages handler.Messages,
) *Service {
	if responder == nil {
		responder = handler.NewErrorResponder(nil, messages)
	}
	return &Service{
		cfg:       cfg,
		resolver:  resolver,
		admission: admission,
		responder: responder,
		messages:  messages,
	}
}

func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	r.MethodNotAllowed(s.responder.MethodNotAllowed)

	// Only writes consume quota.
	r.With(s.admission.Middleware(s.responder)).Post("/", handler.Wrap(s.subscribe,
		handler.WithBinder[handler.Context, Request](binder.JSON(binder.WithMaxBodySize(s.cfg.MaxBodyBytes))),
		handler.WithErrorHandler[handler.Context, Request](s.responder.Handler()),
	))

	return r
}

type Request struct {
	Email string `json:"email"`
}

type Response struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}

func (s *Service) subscribe(ctx handler.Context, req Request) handler.Response {
	email, err := modules.NormalizeEmail(req.Email)
	if err != nil {
		return handler.Error(err)
	}

	res, err := s.resolver.Resolve(ctx, email)
	if err != nil {
		return handler.Error(err)
	}

	return handler.JSON(Response{Message: s.subscribedMessage(ctx), Email: res.Email})
}

func (s *Service) subscribedMessage(ctx context.Context) string {
	if s.messages != nil {
		if msg := s.messages.Tc(ctx, SubscribedMessageKey); msg != "" && msg != SubscribedMessageKey {
			return msg
		}
	}
	return defaultSubscribedMessage
}
