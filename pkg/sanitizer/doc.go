// Package sanitizer provides small, composable helpers for cleaning user input
// before it is validated or stored.
//
// The identity helpers define how an e-mail address becomes the uniqueness key
// of a subscriber: surrounding whitespace is dropped and the address is
// lowercased. Nothing else is rewritten, so two addresses map to the same
// identity only when they differ in case or padding.
//
//	email := sanitizer.NormalizeEmail("  John.Doe@Example.COM ")
//	// email == "john.doe@example.com"
//
// MaskEmail hides the local part of an address before it is logged:
//
//	sanitizer.MaskEmail("john@example.com") // "j***@example.com"
//
// RemoveControlChars drops control characters, except common whitespace,
// from free-form input:
//
//	sanitizer.RemoveControlChars("a\x00b") // "ab"
package sanitizer
