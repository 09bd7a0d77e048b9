package modules

import (
	"github.com/dmitrymomot/landing/pkg/sanitizer"
	"github.com/dmitrymomot/landing/pkg/validator"
)

// MaxEmailLength is the longest address either endpoint accepts.
const MaxEmailLength = 320

// NormalizeEmail returns the identity form of raw and validates it.
// The length bound applies to the normalized value.
func NormalizeEmail(raw string) (string, error) {
	email := sanitizer.NormalizeEmail(raw)
	if err := validator.Apply(
		validator.RequiredString("email", email),
		validator.MaxLenString("email", email, MaxEmailLength),
		validator.ValidEmail("email", email),
	); err != nil {
		return "", err
	}
	return email, nil
}
