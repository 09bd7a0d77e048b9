package billing

import "errors"

var (
	ErrConfiguration = errors.New("checkout is not configured")
	ErrProvider      = errors.New("payment provider failure")

	ErrEmptyEmail                 = errors.New("email is required")
	ErrNoCheckoutURL              = errors.New("no checkout URL returned from provider")
	ErrMissingAPIKey              = errors.New("billing provider API key is required")
	ErrInvalidProviderEnvironment = errors.New("invalid billing provider environment")
)
