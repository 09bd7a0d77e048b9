package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dmitrymomot/landing/pkg/billing"
	"github.com/dmitrymomot/landing/pkg/config"
	"github.com/dmitrymomot/landing/pkg/httpserver"
	"github.com/dmitrymomot/landing/pkg/logger"
	"github.com/dmitrymomot/landing/pkg/mongo"
	"github.com/dmitrymomot/landing/pkg/newsletter"
	"github.com/dmitrymomot/landing/pkg/pg"
	"github.com/dmitrymomot/landing/pkg/ratelimiter"
	"github.com/dmitrymomot/landing/pkg/redis"
	"github.com/dmitrymomot/landing/pkg/requestid"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("landing stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	log := logger.New(os.Stdout,
		logger.WithEnvironment(cfg.Env, cfg.Name),
		logger.WithLevel(cfg.LogLevel),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	deps := dependencies{log: log}
	defer deps.close()

	if err := deps.openAdmissionStore(ctx, cfg); err != nil {
		return err
	}
	if err := deps.openSubscriberStore(ctx, cfg); err != nil {
		return err
	}
	if err := deps.openProvider(cfg); err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	router, err := newRouter(ctx, cfg, deps, reg)
	if err != nil {
		return err
	}

	var srvCfg httpserver.Config
	if err := config.Load(&srvCfg); err != nil {
		return err
	}
	srv := httpserver.NewFromConfig(srvCfg, httpserver.WithLogger(log.With(logger.Component("httpserver"))))
	return srv.Run(ctx, router)
}

// dependencies holds the backends selected by configuration.
type dependencies struct {
	log         *slog.Logger
	admission   ratelimiter.Store
	subscribers newsletter.Store
	provider    billing.Provider
	checks      []httpserver.Check
	closers     []func()
}

func (d *dependencies) close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
}

func (d *dependencies) openAdmissionStore(ctx context.Context, cfg appConfig) error {
	switch cfg.RateLimitStore {
	case "", "memory":
		store := ratelimiter.NewMemoryStore(
			ratelimiter.WithMaxKeys(cfg.RateLimitMaxKeys),
			ratelimiter.WithSweepInterval(cfg.RateLimitSweepInterval),
		)
		d.admission = store
		d.closers = append(d.closers, func() { _ = store.Close() })
	case "redis":
		var rcfg redis.Config
		if err := config.Load(&rcfg); err != nil {
			return err
		}
		client, err := redis.Connect(ctx, rcfg)
		if err != nil {
			return err
		}
		d.admission = ratelimiter.NewRedisStore(client, ratelimiter.WithKeyPrefix(cfg.Name+":ratelimit:"))
		d.checks = append(d.checks, httpserver.Check{Name: "redis", Probe: redis.Healthcheck(client)})
		d.closers = append(d.closers, func() { _ = client.Close() })
	default:
		return fmt.Errorf("unknown RATE_LIMIT_STORE %q", cfg.RateLimitStore)
	}
	d.log.Info("admission store ready", logger.Component("main"), slog.String("store", cfg.RateLimitStore))
	return nil
}

func (d *dependencies) openSubscriberStore(ctx context.Context, cfg appConfig) error {
	switch cfg.NewsletterStore {
	case "", "memory":
		d.subscribers = newsletter.NewMemoryStore()
	case "postgres":
		var pcfg pg.Config
		if err := config.Load(&pcfg); err != nil {
			return err
		}
		pool, err := pg.Connect(ctx, pcfg)
		if err != nil {
			return err
		}
		d.closers = append(d.closers, pool.Close)
		if pcfg.AutoMigrate {
			migrations := newsletter.Migrations()
			if pcfg.MigrationsPath != "" {
				migrations = nil
			}
			if err := pg.Migrate(ctx, pool, pcfg, migrations, d.log.With(logger.Component("migrate"))); err != nil {
				return err
			}
		}
		d.subscribers = newsletter.NewPostgresStore(pool)
		d.checks = append(d.checks, httpserver.Check{Name: "postgres", Probe: pg.Healthcheck(pool)})
	case "mongo":
		var mcfg mongo.Config
		if err := config.Load(&mcfg); err != nil {
			return err
		}
		client, err := mongo.New(ctx, mcfg)
		if err != nil {
			return err
		}
		d.closers = append(d.closers, func() { _ = client.Disconnect(context.Background()) })
		store := newsletter.NewMongoStore(client.Database(mcfg.Database).Collection(newsletter.DefaultCollection))
		if err := store.EnsureIndexes(ctx); err != nil {
			return errors.Join(newsletter.ErrStorage, err)
		}
		d.subscribers = store
		d.checks = append(d.checks, httpserver.Check{Name: "mongo", Probe: mongo.Healthcheck(client)})
	default:
		return fmt.Errorf("unknown NEWSLETTER_STORE %q", cfg.NewsletterStore)
	}
	d.log.Info("subscriber store ready", logger.Component("main"), slog.String("store", cfg.NewsletterStore))
	return nil
}

func (d *dependencies) openProvider(cfg appConfig) error {
	switch cfg.CheckoutProvider {
	case "", "dev":
		d.provider = billing.NewDevProvider(cfg.DevCheckoutURL)
	case "paddle":
		var pcfg billing.PaddleConfig
		if err := config.Load(&pcfg); err != nil {
			return err
		}
		provider, err := billing.NewPaddleProvider(pcfg)
		if err != nil {
			return err
		}
		d.provider = provider
	default:
		return fmt.Errorf("unknown CHECKOUT_PROVIDER %q", cfg.CheckoutProvider)
	}
	if cfg.CheckoutPriceID == "" {
		d.log.Warn("CHECKOUT_PRICE_ID is empty; checkout will answer configuration_error", logger.Component("main"))
	}
	return nil
}
