// Package config loads typed application configuration from environment
// variables.
//
// It wraps github.com/joho/godotenv (optional .env files) and
// github.com/caarlos0/env/v11 (struct tag parsing):
//
//	type Config struct {
//	    Env  string `env:"APP_ENV" envDefault:"development"`
//	    Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// Load reads ./.env once per process and caches each configuration type after
// the first successful parse. Parse reads from an explicit map and never
// caches, which keeps tests independent of the process environment.
// ResetCache clears the cache.
//
// Errors wrap ErrParsingConfig, ErrLoadingEnvFile or ErrNilPointer.
package config
