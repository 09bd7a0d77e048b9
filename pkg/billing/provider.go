package billing

import "context"

// Provider creates checkout sessions with an external payment service.
type Provider interface {
	CreateSession(ctx context.Context, req SessionRequest) (Session, error)
}

// RedirectTargets are where the provider sends the customer afterwards.
type RedirectTargets struct {
	SuccessURL string
	CancelURL  string
}

// SessionRequest is handed to the provider and never stored.
type SessionRequest struct {
	Email            string
	ProductReference string // Provider's price/product identifier
	Redirect         RedirectTargets
}

// Session is a hosted checkout session.
type Session struct {
	ID  string // Provider's session identifier
	URL string // Hosted checkout URL
}
