package main

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/landing/handler"
	"github.com/dmitrymomot/landing/locales"
	"github.com/dmitrymomot/landing/modules"
	"github.com/dmitrymomot/landing/modules/checkout"
	newsletterapi "github.com/dmitrymomot/landing/modules/newsletter"
	"github.com/dmitrymomot/landing/pkg/billing"
	"github.com/dmitrymomot/landing/pkg/clientip"
	"github.com/dmitrymomot/landing/pkg/httpserver"
	"github.com/dmitrymomot/landing/pkg/i18n"
	"github.com/dmitrymomot/landing/pkg/logger"
	"github.com/dmitrymomot/landing/pkg/metrics"
	"github.com/dmitrymomot/landing/pkg/newsletter"
	"github.com/dmitrymomot/landing/pkg/ratelimiter"
	"github.com/dmitrymomot/landing/pkg/requestid"
)

// newRouter wires the endpoints over deps. Both write endpoints share one
// admission controller and one store, each under its own policy.
func newRouter(ctx context.Context, cfg appConfig, deps dependencies, reg *prometheus.Registry) (http.Handler, error) {
	log := deps.log

	translator, err := i18n.NewTranslator(ctx,
		i18n.NewFSAdapter(i18n.NewYAMLParser(), locales.FS, "."),
		i18n.WithLogger(log.With(logger.Component("i18n"))),
		i18n.WithFallbackToKey(false),
	)
	if err != nil {
		return nil, err
	}

	collector := metrics.NewCollector(reg)
	responder := handler.NewErrorResponder(log.With(logger.Component("http")), translator)

	limiter, err := ratelimiter.New(deps.admission)
	if err != nil {
		return nil, err
	}
	admission := func(name string, limit int) modules.Admission {
		return modules.Admission{
			Limiter:  limiter,
			Policy:   ratelimiter.Policy{Name: name, Limit: limit, Window: cfg.RateLimitWindow},
			Observer: collector,
			Logger:   log.With(logger.Component("admission")),
		}
	}

	initiator := billing.NewInitiator(deps.provider,
		billing.WithTimeout(cfg.CheckoutTimeout),
		billing.WithLogger(log),
		billing.WithObserver(collector),
	)
	resolver := newsletter.NewResolver(deps.subscribers,
		newsletter.WithTimeout(cfg.NewsletterTimeout),
		newsletter.WithLogger(log),
		newsletter.WithObserver(collector),
	)

	checkoutSvc := checkout.NewService(
		checkout.Config{
			ProductReference: cfg.CheckoutPriceID,
			Redirect: billing.RedirectTargets{
				SuccessURL: cfg.CheckoutSuccessURL,
				CancelURL:  cfg.CheckoutCancelURL,
			},
			MaxBodyBytes: cfg.MaxBodyBytes,
		},
		initiator,
		admission("checkout", cfg.CheckoutRateLimit),
		responder,
	)
	newsletterSvc := newsletterapi.NewService(
		newsletterapi.Config{MaxBodyBytes: cfg.MaxBodyBytes},
		resolver,
		admission("newsletter", cfg.NewsletterRateLimit),
		responder,
		translator,
	)

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer,
		requestid.Middleware,
		clientip.Middleware(cfg.TrustedIPHeaders...),
		collector.Middleware,
		i18n.Middleware(i18n.DefaultLangExtractor(translator.Matcher())),
	)
	r.NotFound(responder.NotFound)
	r.MethodNotAllowed(responder.MethodNotAllowed)

	r.Get("/healthz", httpserver.LivenessHandler())
	r.Get("/readyz", httpserver.ReadinessHandler(log, cfg.ReadinessTimeout, deps.checks...))
	r.Handle("/metrics", metrics.Handler(reg))

	r.Mount("/", modules.Router(modules.RouterOptions{
		Checkout:   checkoutSvc,
		Newsletter: newsletterSvc,
	}))

	return r, nil
}
