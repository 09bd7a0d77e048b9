// Package core defines the error taxonomy shared by every HTTP endpoint.
//
// Each HTTPError carries the status code returned to the client and a
// translation key. The key selects the fixed, localized message shown to
// users, so internal error text never reaches the response body.
package core

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/landing/pkg/billing"
	"github.com/dmitrymomot/landing/pkg/binder"
	"github.com/dmitrymomot/landing/pkg/newsletter"
	"github.com/dmitrymomot/landing/pkg/ratelimiter"
	"github.com/dmitrymomot/landing/pkg/validator"
)

// HTTPError represents an HTTP error with status code and translation key.
type HTTPError struct {
	Code int    // HTTP status code
	Key  string // Translation key (e.g., "validation_error", "quota_exceeded")
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	return e.Key
}

// Retryable reports whether a client may repeat the same request later.
// Validation and configuration errors never resolve on their own.
func (e HTTPError) Retryable() bool {
	switch e.Key {
	case ErrQuotaExceeded.Key, ErrProvider.Key, ErrStorage.Key, ErrInternal.Key:
		return true
	default:
		return false
	}
}

var (
	// ErrValidation covers malformed or missing input.
	ErrValidation = HTTPError{Code: http.StatusBadRequest, Key: "validation_error"}
	// ErrPayloadTooLarge is returned when the request body exceeds the limit.
	ErrPayloadTooLarge = HTTPError{Code: http.StatusRequestEntityTooLarge, Key: "payload_too_large"}
	// ErrQuotaExceeded means the caller must back off.
	ErrQuotaExceeded = HTTPError{Code: http.StatusTooManyRequests, Key: "quota_exceeded"}
	// ErrNotFound is returned for unknown routes.
	ErrNotFound = HTTPError{Code: http.StatusNotFound, Key: "not_found"}
	// ErrMethodNotAllowed is returned for known routes with the wrong method.
	ErrMethodNotAllowed = HTTPError{Code: http.StatusMethodNotAllowed, Key: "method_not_allowed"}
)

var (
	// ErrConfiguration means required external configuration is absent. Operator-actionable.
	ErrConfiguration = HTTPError{Code: http.StatusInternalServerError, Key: "configuration_error"}
	// ErrProvider means the payment provider call failed or timed out.
	ErrProvider = HTTPError{Code: http.StatusInternalServerError, Key: "provider_error"}
	// ErrStorage means persistence failed for a reason other than a uniqueness conflict.
	ErrStorage = HTTPError{Code: http.StatusInternalServerError, Key: "storage_error"}
	// ErrInternal is the catch-all for unclassified failures.
	ErrInternal = HTTPError{Code: http.StatusInternalServerError, Key: "internal_error"}
)

// NewHTTPError creates a custom HTTP error with the given status code and translation key.
func NewHTTPError(code int, key string) HTTPError {
	return HTTPError{Code: code, Key: key}
}

// Classify maps an error from any layer to its taxonomy entry.
// An HTTPError anywhere in the chain is returned unchanged.
// Unknown errors classify as ErrInternal.
func Classify(err error) HTTPError {
	if err == nil {
		return ErrInternal
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	switch {
	case errors.Is(err, binder.ErrBodyTooLarge):
		return ErrPayloadTooLarge

	case errors.Is(err, ratelimiter.ErrRateLimited):
		return ErrQuotaExceeded

	// Configuration is checked before input errors: a misconfigured checkout
	// fails the same way regardless of what the caller sent.
	case errors.Is(err, billing.ErrConfiguration):
		return ErrConfiguration

	case validator.IsValidationError(err),
		errors.Is(err, validator.ErrValidationFailed),
		errors.Is(err, binder.ErrMissingContentType),
		errors.Is(err, binder.ErrUnsupportedMediaType),
		errors.Is(err, binder.ErrFailedToParseJSON),
		errors.Is(err, binder.ErrEmptyBody),
		errors.Is(err, billing.ErrEmptyEmail),
		errors.Is(err, newsletter.ErrEmptyEmail):
		return ErrValidation

	case errors.Is(err, billing.ErrProvider):
		return ErrProvider

	case errors.Is(err, newsletter.ErrStorage):
		return ErrStorage

	default:
		return ErrInternal
	}
}
