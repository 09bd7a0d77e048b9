// Package billing starts hosted checkout sessions with an external payment
// provider.
//
// Initiator makes exactly one provider call per request, bounded by a timeout
// and by the caller's context, and maps the outcome onto two failure kinds:
// ErrConfiguration when no product reference is configured, and ErrProvider
// when the provider call fails, times out or returns no checkout URL. Nothing
// is persisted locally; the provider owns session state.
//
//	provider, err := billing.NewPaddleProvider(billing.PaddleConfig{APIKey: key})
//	if err != nil {
//		return err
//	}
//
//	initiator := billing.NewInitiator(provider, billing.WithTimeout(10*time.Second))
//	session, err := initiator.CreateSession(ctx, "jane@example.com", priceID, billing.RedirectTargets{
//		SuccessURL: "https://example.com/thanks",
//	})
//
// DevProvider returns deterministic local sessions for development.
package billing
