package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/landing/core"
	"github.com/dmitrymomot/landing/pkg/logger"
	"github.com/dmitrymomot/landing/pkg/requestid"
)

// Messages resolves a translation key to a user-facing message in the
// language stored in ctx. *i18n.Translator satisfies it.
type Messages interface {
	Tc(ctx context.Context, key string, args ...string) string
}

// defaultMessages are used when no catalog is configured.
var defaultMessages = map[string]string{
	core.ErrValidation.Key:       "Please provide a valid email address.",
	core.ErrPayloadTooLarge.Key:  "The request is too large.",
	core.ErrQuotaExceeded.Key:    "Too many requests. Please try again later.",
	core.ErrNotFound.Key:         "Not found.",
	core.ErrMethodNotAllowed.Key: "Method not allowed.",
	core.ErrConfiguration.Key:    "This service is temporarily unavailable.",
	core.ErrProvider.Key:         "We could not reach the payment provider. Please try again later.",
	core.ErrStorage.Key:          "We could not save your request. Please try again later.",
	core.ErrInternal.Key:         "Something went wrong. Please try again later.",
}

// MessageKeyPrefix namespaces error keys in the translation catalog.
const MessageKeyPrefix = "errors."

// ErrorResponder classifies errors into the core taxonomy, logs them and
// renders a failed Envelope. The rendered message is looked up by key and
// never contains the error text.
type ErrorResponder struct {
	log      *slog.Logger
	messages Messages
}

// NewErrorResponder creates an ErrorResponder. Both arguments are optional.
func NewErrorResponder(log *slog.Logger, messages Messages) *ErrorResponder {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &ErrorResponder{log: log, messages: messages}
}

// Message returns the user-facing message for e in the request language.
func (e *ErrorResponder) Message(ctx context.Context, httpErr core.HTTPError) string {
	if e.messages != nil {
		key := MessageKeyPrefix + httpErr.Key
		if msg := e.messages.Tc(ctx, key); msg != "" && msg != key {
			return msg
		}
	}
	if msg, ok := defaultMessages[httpErr.Key]; ok {
		return msg
	}
	return http.StatusText(httpErr.Code)
}

// Respond writes err as a failed envelope.
func (e *ErrorResponder) Respond(w http.ResponseWriter, r *http.Request, err error) {
	httpErr := core.Classify(err)
	ctx := r.Context()

	level := slog.LevelError
	if httpErr.Code < http.StatusInternalServerError {
		level = slog.LevelWarn
	}

	e.log.LogAttrs(ctx, level, "request error",
		logger.RequestID(requestid.FromContext(ctx)),
		logger.Error(err),
		logger.StatusCode(httpErr.Code),
		slog.String("code", httpErr.Key),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		logger.Component("error_handler"),
	)

	resp := JSONError(httpErr.Code, e.Message(ctx, httpErr), httpErr.Key)
	if renderErr := resp.Render(w, r); renderErr != nil {
		e.log.LogAttrs(ctx, slog.LevelError, "failed to render error response",
			logger.RequestID(requestid.FromContext(ctx)),
			logger.Error(renderErr),
			logger.Event("render_error"),
		)
	}
}

// Handler adapts the responder to Wrap's ErrorHandler.
func (e *ErrorResponder) Handler() ErrorHandler[Context] {
	return func(ctx Context, err error) {
		e.Respond(ctx.ResponseWriter(), ctx.Request(), err)
	}
}

// NotFound responds with core.ErrNotFound.
func (e *ErrorResponder) NotFound(w http.ResponseWriter, r *http.Request) {
	e.Respond(w, r, core.ErrNotFound)
}

// MethodNotAllowed responds with core.ErrMethodNotAllowed.
func (e *ErrorResponder) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	e.Respond(w, r, core.ErrMethodNotAllowed)
}
