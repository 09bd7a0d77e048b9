package billing

import (
	"context"
	"net/url"

	"github.com/google/uuid"
)

// DevProvider returns local sessions without contacting a payment service.
// The checkout URL is SuccessURL with the session id appended, or BaseURL
// when no success URL is given.
type DevProvider struct {
	BaseURL string
}

// NewDevProvider creates a development provider.
func NewDevProvider(baseURL string) *DevProvider {
	return &DevProvider{BaseURL: baseURL}
}

func (p *DevProvider) CreateSession(ctx context.Context, req SessionRequest) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}

	id := "dev_" + uuid.NewString()

	target := req.Redirect.SuccessURL
	if target == "" {
		target = p.BaseURL
	}
	u, err := url.Parse(target)
	if err != nil {
		return Session{}, err
	}
	q := u.Query()
	q.Set("session_id", id)
	u.RawQuery = q.Encode()

	return Session{ID: id, URL: u.String()}, nil
}
