// Package binder decodes HTTP request bodies into typed request structs.
//
// JSON returns a binder function that validates the Content-Type header, enforces a body
// size limit, decodes in strict mode and strips control characters from the
// decoded strings. Failures are reported with the sentinel errors declared in
// errors.go so the HTTP boundary can map them to status codes:
//
//	ErrBodyTooLarge                              -> 413
//	ErrMissingContentType, ErrUnsupportedMediaType,
//	ErrFailedToParseJSON, ErrEmptyBody           -> 400
//
// Usage with the handler package:
//
//	type subscribeRequest struct {
//	    Email string `json:"email"`
//	}
//
//	h := handler.Wrap(subscribe, handler.WithBinder(binder.JSON()))
package binder
