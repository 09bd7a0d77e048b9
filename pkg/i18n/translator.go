package i18n

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"sync"
)

// Translator looks up localized messages by language and dot-separated key.
type Translator struct {
	translations  map[string]map[string]any
	defaultLang   string
	fallbackToKey bool
	logMissing    bool
	logger        *slog.Logger
	mu            sync.RWMutex
	adapter       TranslationAdapter
}

// NewTranslator creates a Translator and loads translations from adapter.
func NewTranslator(ctx context.Context, adapter TranslationAdapter, options ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrAdapterRequired
	}

	t := &Translator{
		defaultLang:   DefaultLanguage,
		fallbackToKey: true,
		logger:        slog.New(slog.DiscardHandler),
		adapter:       adapter,
	}

	for _, option := range options {
		option(t)
	}

	if err := t.Reload(ctx); err != nil {
		return nil, err
	}

	t.logger.InfoContext(ctx, "translations loaded", slog.Any("languages", t.SupportedLanguages()))
	return t, nil
}

// Reload replaces the translations with a fresh load from the adapter.
func (t *Translator) Reload(ctx context.Context) error {
	translations, err := t.adapter.Load(ctx)
	if err != nil {
		return err
	}
	if len(translations) == 0 {
		return ErrNoTranslations
	}

	normalized := make(map[string]map[string]any, len(translations))
	for lang, tree := range translations {
		lang = strings.ToLower(strings.TrimSpace(lang))
		if lang == "" {
			return ErrEmptyLanguageCode
		}
		if tree == nil {
			return fmt.Errorf("nil translations for language %q", lang)
		}
		normalized[lang] = tree
	}

	t.mu.Lock()
	t.translations = normalized
	t.mu.Unlock()
	return nil
}

// SupportedLanguages returns the loaded language codes, sorted.
func (t *Translator) SupportedLanguages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	langs := make([]string, 0, len(t.translations))
	for lang := range t.translations {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// DefaultLanguage returns the language used when the requested one is missing.
func (t *Translator) DefaultLanguage() string {
	return t.defaultLang
}

// Matcher returns a Matcher over the loaded languages with the translator's default first.
func (t *Translator) Matcher() *Matcher {
	return NewMatcher(t.defaultLang, t.SupportedLanguages()...)
}

// HasTranslation reports whether lang has a string value under key.
func (t *Translator) HasTranslation(lang, key string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	_, ok := t.lookup(lang, key)
	return ok
}

// lookup walks a nested map using dot-separated keys.
// For example "errors.quota_exceeded" reads tree["errors"]["quota_exceeded"].
func (t *Translator) lookup(lang, key string) (string, bool) {
	current, ok := t.translations[strings.ToLower(lang)]
	if !ok {
		return "", false
	}

	parts := strings.Split(key, ".")
	for i, part := range parts {
		val, ok := current[part]
		if !ok {
			return "", false
		}
		if i == len(parts)-1 {
			s, ok := val.(string)
			return s, ok
		}
		next, ok := val.(map[string]any)
		if !ok {
			return "", false
		}
		current = next
	}

	return "", false
}

// paramRegex finds named parameters in the form %{name}.
var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// format substitutes %{name} placeholders from args given as key, value pairs.
// Unknown placeholders are kept as is; a trailing odd argument is ignored.
func format(tmpl string, args []string) string {
	if len(args) < 2 {
		return tmpl
	}
	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}
	return paramRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		if val, ok := params[match[2:len(match)-1]]; ok {
			return val
		}
		return match
	})
}

// T translates key for lang, falling back to the default language and then,
// if enabled, to the key itself.
//
//	// errors.quota_exceeded: "Too many requests. Try again in %{seconds} seconds."
//	msg := tr.T("en", "errors.quota_exceeded", "seconds", "60")
func (t *Translator) T(lang, key string, args ...string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if s, ok := t.lookup(lang, key); ok {
		return format(s, args)
	}
	if t.logMissing {
		t.logger.Warn("translation not found", slog.String("lang", lang), slog.String("key", key))
	}
	if s, ok := t.lookup(t.defaultLang, key); ok {
		return format(s, args)
	}
	if t.fallbackToKey {
		return format(key, args)
	}
	return ""
}

// Td translates key for lang, or formats defaultValue when the key is missing
// in both lang and the default language.
func (t *Translator) Td(lang, key, defaultValue string, args ...string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if s, ok := t.lookup(lang, key); ok {
		return format(s, args)
	}
	if s, ok := t.lookup(t.defaultLang, key); ok {
		return format(s, args)
	}
	return format(defaultValue, args)
}

// Tc translates key using the language stored in ctx by Middleware.
func (t *Translator) Tc(ctx context.Context, key string, args ...string) string {
	return t.T(LocaleFromContext(ctx), key, args...)
}
