// Package pg provides utilities for interacting with PostgreSQL using the
// pgx/v5 driver: connection pooling with retry, goose migrations, health
// checks and error classification helpers.
//
// # Architecture
//
//   • Config – a declarative struct whose fields are populated from
//     environment variables via github.com/caarlos0/env. It controls
//     connection pool limits, health-check cadence and migration settings.
//
//   • Connect – opens a *pgxpool.Pool based on Config, retrying with
//     linear back-off until the database becomes available.
//
//   • Migrate – runs goose migrations against the same connection pool.
//     Migrations are read from an fs.FS (typically an embed.FS shipped by the
//     package that owns the schema) or, when none is given, from
//     Config.MigrationsPath on disk.
//
// # Usage
//
//	cfg, err := config.Load[pg.Config]()
//	if err != nil {
//	    return err
//	}
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, newsletter.Migrations(), slog.Default()); err != nil {
//	    return err
//	}
//
//	health := pg.Healthcheck(pool)
//
// # Error Handling
//
// IsDuplicateKeyError and IsNotFoundError unwrap errors returned by pgx so
// storage code can turn a unique violation into a regular result.
package pg
