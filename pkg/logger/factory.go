package logger

import (
	"io"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/landing/pkg/environment"
)

// profile is the output shape used for one deployment environment.
type profile struct {
	level slog.Level
	text  bool
}

var profiles = map[environment.Environment]profile{
	environment.Development: {level: slog.LevelDebug, text: true},
	environment.Staging:     {level: slog.LevelInfo},
	environment.Production:  {level: slog.LevelInfo},
}

// Option configures New.
type Option func(*config)

type config struct {
	profile    profile
	attrs      []slog.Attr
	extractors []ContextExtractor
}

// WithEnvironment selects the output profile for env and tags every record
// with "service" and "env". Unknown environments are treated as development.
func WithEnvironment(env, service string) Option {
	return func(c *config) {
		e := environment.Parse(env)
		c.profile = profiles[e]
		c.attrs = append(c.attrs, slog.String("env", e.String()))
		if service != "" {
			c.attrs = append(c.attrs, slog.String("service", service))
		}
	}
}

// WithLevel overrides the environment's minimum level.
// Accepts debug, info, warn and error; anything else is ignored.
func WithLevel(name string) Option {
	return func(c *config) {
		var l slog.Level
		if err := l.UnmarshalText([]byte(strings.TrimSpace(name))); err == nil {
			c.profile.level = l
		}
	}
}

// WithContextExtractors registers callbacks that add request-scoped
// attributes, such as the request id, to every record.
func WithContextExtractors(extractors ...ContextExtractor) Option {
	return func(c *config) {
		for _, ex := range extractors {
			if ex != nil {
				c.extractors = append(c.extractors, ex)
			}
		}
	}
}

// New builds the process logger writing to w.
// Without options it emits JSON at INFO, the production profile.
func New(w io.Writer, opts ...Option) *slog.Logger {
	cfg := &config{profile: profiles[environment.Production]}
	for _, opt := range opts {
		opt(cfg)
	}

	handlerOpts := &slog.HandlerOptions{Level: cfg.profile.level}

	var h slog.Handler
	if cfg.profile.text {
		h = slog.NewTextHandler(w, handlerOpts)
	} else {
		h = slog.NewJSONHandler(w, handlerOpts)
	}
	if len(cfg.attrs) > 0 {
		h = h.WithAttrs(cfg.attrs)
	}
	if len(cfg.extractors) > 0 {
		h = &contextHandler{next: h, extractors: cfg.extractors}
	}
	return slog.New(h)
}

// SetAsDefault makes l the logger behind the slog package functions.
func SetAsDefault(l *slog.Logger) {
	slog.SetDefault(l)
}
