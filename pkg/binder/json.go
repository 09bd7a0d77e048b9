package binder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"reflect"

	"github.com/dmitrymomot/landing/pkg/sanitizer"
)

// DefaultMaxJSONSize is the default maximum size for JSON request bodies (4KB).
// Landing page forms carry a single short field, anything larger is abuse.
const DefaultMaxJSONSize int64 = 4 << 10

type jsonOptions struct {
	maxBytes int64
}

// JSONOption configures the JSON binder.
type JSONOption func(*jsonOptions)

// WithMaxBodySize caps the number of body bytes the binder reads.
// Non-positive values keep the default.
func WithMaxBodySize(n int64) JSONOption {
	return func(o *jsonOptions) {
		if n > 0 {
			o.maxBytes = n
		}
	}
}

// JSON creates a JSON binder function.
//
// The body is decoded in strict mode: unknown fields and trailing data are
// rejected. Bodies larger than the configured limit fail with ErrBodyTooLarge
// without being decoded. Control characters are stripped from every decoded
// string field.
//
// Example:
//
//	h := handler.Wrap(subscribe, handler.WithBinder(binder.JSON(binder.WithMaxBodySize(4096))))
func JSON(opts ...JSONOption) func(r *http.Request, v any) error {
	o := jsonOptions{maxBytes: DefaultMaxJSONSize}
	for _, opt := range opts {
		opt(&o)
	}

	return func(r *http.Request, v any) error {
		select {
		case <-r.Context().Done():
			return fmt.Errorf("%w: %w", ErrFailedToParseJSON, r.Context().Err())
		default:
		}

		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			return fmt.Errorf("%w: expected application/json", ErrMissingContentType)
		}

		mediaType, _, err := mime.ParseMediaType(contentType)
		if err != nil || mediaType != "application/json" {
			return fmt.Errorf("%w: got %q, expected application/json", ErrUnsupportedMediaType, contentType)
		}

		if r.ContentLength > o.maxBytes {
			return fmt.Errorf("%w: max %d bytes", ErrBodyTooLarge, o.maxBytes)
		}

		if r.Body == nil {
			return ErrEmptyBody
		}

		// Read one byte past the limit so an oversized chunked body is detected.
		body, err := io.ReadAll(io.LimitReader(r.Body, o.maxBytes+1))
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				return fmt.Errorf("%w: max %d bytes", ErrBodyTooLarge, o.maxBytes)
			}
			return fmt.Errorf("%w: read body: %w", ErrFailedToParseJSON, err)
		}
		if int64(len(body)) > o.maxBytes {
			return fmt.Errorf("%w: max %d bytes", ErrBodyTooLarge, o.maxBytes)
		}
		if len(bytes.TrimSpace(body)) == 0 {
			return ErrEmptyBody
		}

		decoder := json.NewDecoder(bytes.NewReader(body))
		decoder.DisallowUnknownFields()

		if err := decoder.Decode(v); err != nil {
			return fmt.Errorf("%w: %w", ErrFailedToParseJSON, err)
		}

		var extra json.RawMessage
		if err := decoder.Decode(&extra); err != io.EOF {
			return fmt.Errorf("%w: unexpected data after JSON object", ErrFailedToParseJSON)
		}

		sanitizeStrings(reflect.ValueOf(v))

		return nil
	}
}

// sanitizeStrings strips control characters from every settable string reachable from rv.
func sanitizeStrings(rv reflect.Value) {
	switch rv.Kind() {
	case reflect.String:
		if rv.CanSet() {
			rv.SetString(sanitizer.RemoveControlChars(rv.String()))
		}

	case reflect.Struct:
		for i := range rv.NumField() {
			if field := rv.Field(i); field.CanSet() {
				sanitizeStrings(field)
			}
		}

	case reflect.Slice, reflect.Array:
		for i := range rv.Len() {
			sanitizeStrings(rv.Index(i))
		}

	case reflect.Ptr, reflect.Interface:
		if !rv.IsNil() {
			sanitizeStrings(rv.Elem())
		}
	}
}
