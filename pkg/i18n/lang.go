package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// DefaultLanguage is used when no preference can be matched.
const DefaultLanguage = "en"

// maxPreferenceLength bounds the language preference strings accepted from
// clients (Accept-Language header, cookie, query parameter).
const maxPreferenceLength = 4096

// Matcher resolves client language preferences against a fixed set of
// supported languages using BCP 47 matching, so "de-AT" resolves to "de".
type Matcher struct {
	langs   []string
	matcher language.Matcher
}

// NewMatcher builds a Matcher. defaultLang is returned when nothing matches
// and is always part of the supported set. Unparseable codes are ignored.
func NewMatcher(defaultLang string, supported ...string) *Matcher {
	defaultLang = strings.ToLower(strings.TrimSpace(defaultLang))
	if defaultLang == "" {
		defaultLang = DefaultLanguage
	}

	m := &Matcher{}
	tags := make([]language.Tag, 0, len(supported)+1)
	seen := make(map[string]struct{}, len(supported)+1)

	for _, code := range append([]string{defaultLang}, supported...) {
		code = strings.ToLower(strings.TrimSpace(code))
		if _, dup := seen[code]; dup || code == "" {
			continue
		}
		tag, err := language.Parse(code)
		if err != nil {
			continue
		}
		seen[code] = struct{}{}
		m.langs = append(m.langs, code)
		tags = append(tags, tag)
	}

	if len(tags) == 0 {
		m.langs = []string{DefaultLanguage}
		tags = []language.Tag{language.English}
	}

	m.matcher = language.NewMatcher(tags)
	return m
}

// Default returns the fallback language.
func (m *Matcher) Default() string {
	return m.langs[0]
}

// Languages returns the supported languages, default first.
func (m *Matcher) Languages() []string {
	return append([]string(nil), m.langs...)
}

// Lookup matches a single preference string, which may be a plain code
// ("de") or a full Accept-Language value ("de-CH;q=0.9, en;q=0.5").
// It reports false when no supported language matches with any confidence.
func (m *Matcher) Lookup(pref string) (string, bool) {
	pref = strings.TrimSpace(pref)
	if pref == "" || len(pref) > maxPreferenceLength {
		return "", false
	}

	tags, _, err := language.ParseAcceptLanguage(pref)
	if err != nil || len(tags) == 0 {
		return "", false
	}

	_, idx, conf := m.matcher.Match(tags...)
	if conf == language.No {
		return "", false
	}
	return m.langs[idx], true
}

// Match returns the first preference that Lookup resolves, or the default language.
func (m *Matcher) Match(prefs ...string) string {
	for _, p := range prefs {
		if lang, ok := m.Lookup(p); ok {
			return lang
		}
	}
	return m.Default()
}
