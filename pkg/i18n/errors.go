package i18n

import (
	"errors"
	"fmt"
)

var (
	ErrAdapterRequired   = errors.New("translation adapter is required")
	ErrNoTranslations    = errors.New("no translations loaded")
	ErrEmptyLanguageCode = errors.New("empty language code")

	ErrYAMLParsingCancelled = errors.New("yaml parsing cancelled")
	ErrFailedToParseYAML    = errors.New("failed to parse YAML content")

	ErrLoadingCancelled = errors.New("loading translations cancelled")
	ErrFailedToReadDir  = errors.New("failed to read translations directory")
	ErrFailedToReadFile = errors.New("failed to read translation file")
	ErrNoTranslationSrc = errors.New("no translation files found")
)

// ErrLanguageNotSupported indicates that the requested language is not available.
type ErrLanguageNotSupported struct {
	Lang string
}

func (e *ErrLanguageNotSupported) Error() string {
	return fmt.Sprintf("language not supported: %s", e.Lang)
}
