// Package httpserver wraps net/http with graceful shutdown, server timeouts
// and probe handlers.
//
// Run binds the listener, serves until the context is canceled, then drains
// in-flight requests within the shutdown timeout. Signals are the caller's
// concern:
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//
//	r := chi.NewRouter()
//	r.Get("/healthz", httpserver.LivenessHandler())
//	r.Get("/readyz", httpserver.ReadinessHandler(log, time.Second,
//		httpserver.Check{Name: "postgres", Probe: pool.Ping},
//	))
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, r); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// Listen failures are wrapped with ErrStart and drain failures with
// ErrShutdown.
package httpserver
