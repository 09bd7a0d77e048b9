package main

import "time"

// appConfig is the process configuration. Connection settings for optional
// backends are loaded separately, and only when that backend is selected.
type appConfig struct {
	Env  string `env:"APP_ENV" envDefault:"development"`
	Name string `env:"APP_NAME" envDefault:"landing"`

	LogLevel string `env:"LOG_LEVEL"` // Overrides the environment default: debug, info, warn or error

	CheckoutProvider   string        `env:"CHECKOUT_PROVIDER" envDefault:"dev"` // paddle or dev
	CheckoutPriceID    string        `env:"CHECKOUT_PRICE_ID"`                  // Product reference; empty answers 500 configuration_error
	CheckoutSuccessURL string        `env:"CHECKOUT_SUCCESS_URL"`
	CheckoutCancelURL  string        `env:"CHECKOUT_CANCEL_URL"`
	CheckoutTimeout    time.Duration `env:"CHECKOUT_TIMEOUT" envDefault:"10s"`
	DevCheckoutURL     string        `env:"DEV_CHECKOUT_URL" envDefault:"http://localhost:8080/checkout/success"`

	CheckoutRateLimit      int           `env:"CHECKOUT_RATE_LIMIT" envDefault:"5"`
	NewsletterRateLimit    int           `env:"NEWSLETTER_RATE_LIMIT" envDefault:"5"`
	RateLimitWindow        time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"60s"`
	RateLimitStore         string        `env:"RATE_LIMIT_STORE" envDefault:"memory"` // memory or redis
	RateLimitMaxKeys       int           `env:"RATE_LIMIT_MAX_KEYS" envDefault:"100000"`
	RateLimitSweepInterval time.Duration `env:"RATE_LIMIT_SWEEP_INTERVAL" envDefault:"1m"`

	NewsletterStore   string        `env:"NEWSLETTER_STORE" envDefault:"memory"` // memory, postgres or mongo
	NewsletterTimeout time.Duration `env:"NEWSLETTER_TIMEOUT" envDefault:"5s"`

	MaxBodyBytes     int64         `env:"MAX_BODY_BYTES" envDefault:"4096"`
	TrustedIPHeaders []string      `env:"TRUSTED_IP_HEADERS" envSeparator:","`
	ReadinessTimeout time.Duration `env:"READINESS_TIMEOUT" envDefault:"2s"`
}
