package i18n

import "net/http"

// LangExtractor determines the language for a request.
type LangExtractor func(r *http.Request) string

// ExtractorConfig holds configuration for the language extractor
type ExtractorConfig struct {
	CookieName     string
	QueryParamName string
}

// ExtractorOption configures the language extractor
type ExtractorOption func(*ExtractorConfig)

// WithCookieName sets the cookie name to check for language preference.
func WithCookieName(name string) ExtractorOption {
	return func(c *ExtractorConfig) {
		if name != "" {
			c.CookieName = name
		}
	}
}

// WithQueryParamName sets the query parameter name to check for language.
func WithQueryParamName(name string) ExtractorOption {
	return func(c *ExtractorConfig) {
		if name != "" {
			c.QueryParamName = name
		}
	}
}

// DefaultLangExtractor checks, in priority order, the "lang" cookie, the
// "lang" query parameter and the Accept-Language header. The first source
// that matches a supported language wins; otherwise the matcher default is used.
func DefaultLangExtractor(m *Matcher, opts ...ExtractorOption) LangExtractor {
	if m == nil {
		m = NewMatcher(DefaultLanguage)
	}

	cfg := &ExtractorConfig{
		CookieName:     "lang",
		QueryParamName: "lang",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(r *http.Request) string {
		var cookie string
		if c, err := r.Cookie(cfg.CookieName); err == nil {
			cookie = c.Value
		}
		return m.Match(
			cookie,
			r.URL.Query().Get(cfg.QueryParamName),
			r.Header.Get("Accept-Language"),
		)
	}
}
