// Package logger builds the service's *slog.Logger and holds the attribute
// helpers that keep key names consistent across packages.
//
// New picks its output from the deployment environment: development logs
// text at DEBUG, staging and production log JSON at INFO. Every record is
// tagged with "service" and "env". LOG_LEVEL may override the level.
//
//	log := logger.New(os.Stdout,
//	    logger.WithEnvironment(cfg.Env, cfg.Name),
//	    logger.WithLevel(cfg.LogLevel),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
// Context extractors run on every record, so request-scoped values such as
// the request id appear without being passed to each call.
//
// Attribute helpers return an empty slog.Attr for empty input, which slog
// drops. Email masks the local part; raw addresses are never logged:
//
//	log.WarnContext(ctx, "request rate limited",
//	    logger.Policy("checkout"),
//	    logger.ClientIP("203.0.113.7"),
//	)
package logger
