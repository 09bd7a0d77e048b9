// Package handler provides type-safe HTTP request handling with a uniform
// JSON response envelope.
//
// Handlers are generic functions that receive a bound request struct and
// return a Response. Wrap converts them to http.HandlerFunc:
//
//	type subscribeRequest struct {
//		Email string `json:"email"`
//	}
//
//	func subscribe(ctx handler.Context, req subscribeRequest) handler.Response {
//		res, err := resolver.Resolve(ctx, req.Email)
//		if err != nil {
//			return handler.Error(err)
//		}
//		return handler.JSON(res)
//	}
//
//	r.Post("/newsletter", handler.Wrap(subscribe,
//		handler.WithBinder[handler.Context, subscribeRequest](binder.JSON()),
//		handler.WithErrorHandler[handler.Context, subscribeRequest](responder.Handler()),
//	))
//
// # Envelope
//
// Every body has the shape of Envelope:
//
//	{"success": true, "data": {...}}
//	{"success": false, "error": "<localized message>", "code": "<taxonomy key>"}
//
// # Errors
//
// Binding errors, render errors and Error responses are passed to the
// ErrorHandler. ErrorResponder classifies them with core.Classify, logs 4xx at
// WARN and 5xx at ERROR with the request id, and renders the failed envelope
// with a message looked up in the translation catalog. Error text is never
// sent to the client.
package handler
