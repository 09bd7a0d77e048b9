// Package i18n provides localized message lookup for HTTP handlers.
//
// Translations are nested maps keyed by language code and loaded through a
// TranslationAdapter. FSAdapter reads YAML files from any fs.FS, including an
// embed.FS compiled into the binary:
//
//	//go:embed *.yaml
//	var locales embed.FS
//
//	tr, err := i18n.NewTranslator(ctx, i18n.NewFSAdapter(i18n.NewYAMLParser(), locales, "."))
//
// Language negotiation uses golang.org/x/text/language. Middleware resolves
// the request language from a cookie, a query parameter or Accept-Language
// and stores it in the request context:
//
//	r.Use(i18n.Middleware(i18n.DefaultLangExtractor(tr.Matcher())))
//
//	msg := tr.Tc(r.Context(), "errors.validation_error")
//
// Lookups fall back to the default language and then to the key itself.
package i18n
