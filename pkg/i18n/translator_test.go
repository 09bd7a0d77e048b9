package i18n_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/landing/pkg/i18n"
)

const catalogEN = `
en:
  errors:
    validation_error: "Please enter a valid email address."
    quota_exceeded: "Too many requests. Try again in %{seconds} seconds."
  newsletter:
    subscribed: "Thanks for subscribing!"
`

const catalogDE = `
de:
  errors:
    validation_error: "Bitte gib eine gültige E-Mail-Adresse ein."
`

func newTranslator(t *testing.T, opts ...i18n.Option) *i18n.Translator {
	t.Helper()

	fsys := fstest.MapFS{
		"locales/en.yaml":   {Data: []byte(catalogEN)},
		"locales/de.yml":    {Data: []byte(catalogDE)},
		"locales/README.md": {Data: []byte("ignored")},
	}

	tr, err := i18n.NewTranslator(context.Background(), i18n.NewFSAdapter(i18n.NewYAMLParser(), fsys, "locales"), opts...)
	require.NoError(t, err)
	return tr
}

func TestTranslator_T(t *testing.T) {
	t.Parallel()

	tr := newTranslator(t)

	assert.Equal(t, []string{"de", "en"}, tr.SupportedLanguages())
	assert.Equal(t, "Bitte gib eine gültige E-Mail-Adresse ein.", tr.T("de", "errors.validation_error"))
	assert.Equal(t, "Please enter a valid email address.", tr.T("EN", "errors.validation_error"))

	t.Run("named parameters", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Too many requests. Try again in 60 seconds.", tr.T("en", "errors.quota_exceeded", "seconds", "60"))
		assert.Equal(t, "Too many requests. Try again in %{seconds} seconds.", tr.T("en", "errors.quota_exceeded"))
	})

	t.Run("falls back to default language", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Thanks for subscribing!", tr.T("de", "newsletter.subscribed"))
		assert.Equal(t, "Thanks for subscribing!", tr.T("fr", "newsletter.subscribed"))
	})

	t.Run("falls back to key", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "errors.unknown", tr.T("en", "errors.unknown"))
		assert.Equal(t, "errors", tr.T("en", "errors"))
	})

	t.Run("has translation", func(t *testing.T) {
		t.Parallel()
		assert.True(t, tr.HasTranslation("de", "errors.validation_error"))
		assert.False(t, tr.HasTranslation("de", "newsletter.subscribed"))
		assert.False(t, tr.HasTranslation("en", "errors"))
	})
}

func TestTranslator_NoFallbackToKey(t *testing.T) {
	t.Parallel()

	tr := newTranslator(t, i18n.WithFallbackToKey(false))
	assert.Empty(t, tr.T("en", "errors.unknown"))
	assert.Equal(t, "Something went wrong", tr.Td("en", "errors.unknown", "Something went wrong"))
	assert.Equal(t, "Please enter a valid email address.", tr.Td("es", "errors.validation_error", "fallback"))
}

func TestTranslator_DefaultLanguage(t *testing.T) {
	t.Parallel()

	tr := newTranslator(t, i18n.WithDefaultLanguage("DE"))
	assert.Equal(t, "de", tr.DefaultLanguage())
	assert.Equal(t, "Bitte gib eine gültige E-Mail-Adresse ein.", tr.T("fr", "errors.validation_error"))
	assert.Equal(t, "de", tr.Matcher().Default())
}

func TestTranslator_Tc(t *testing.T) {
	t.Parallel()

	tr := newTranslator(t)
	ctx := i18n.WithLocale(context.Background(), "de")
	assert.Equal(t, "Bitte gib eine gültige E-Mail-Adresse ein.", tr.Tc(ctx, "errors.validation_error"))
	assert.Equal(t, "Please enter a valid email address.", tr.Tc(context.Background(), "errors.validation_error"))
}

func TestNewTranslator_Errors(t *testing.T) {
	t.Parallel()

	_, err := i18n.NewTranslator(context.Background(), nil)
	assert.ErrorIs(t, err, i18n.ErrAdapterRequired)

	_, err = i18n.NewTranslator(context.Background(), &i18n.MapAdapter{})
	assert.ErrorIs(t, err, i18n.ErrNoTranslations)

	_, err = i18n.NewTranslator(context.Background(), &i18n.MapAdapter{
		Translations: map[string]map[string]any{" ": {"a": "b"}},
	})
	assert.ErrorIs(t, err, i18n.ErrEmptyLanguageCode)
}

func TestTranslator_MapAdapter(t *testing.T) {
	t.Parallel()

	tr, err := i18n.NewTranslator(context.Background(), &i18n.MapAdapter{
		Translations: map[string]map[string]any{
			"es": {"greeting": "Hola, %{name}"},
		},
	}, i18n.WithDefaultLanguage("es"))
	require.NoError(t, err)
	assert.Equal(t, "Hola, Ana", tr.T("es", "greeting", "name", "Ana", "dangling"))
}
