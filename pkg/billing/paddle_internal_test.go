package billing

import (
	"context"
	"errors"
	"testing"

	paddle "github.com/PaddleHQ/paddle-go-sdk/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTransactions struct {
	req *paddle.CreateTransactionRequest
	res *paddle.Transaction
	err error
}

func (f *fakeTransactions) CreateTransaction(_ context.Context, req *paddle.CreateTransactionRequest) (*paddle.Transaction, error) {
	f.req = req
	return f.res, f.err
}

func TestNewPaddleProvider(t *testing.T) {
	t.Parallel()

	_, err := NewPaddleProvider(PaddleConfig{})
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	_, err = NewPaddleProvider(PaddleConfig{APIKey: "key", Environment: "staging"})
	assert.ErrorIs(t, err, ErrInvalidProviderEnvironment)

	p, err := NewPaddleProvider(PaddleConfig{APIKey: "key", Environment: "sandbox"})
	require.NoError(t, err)
	assert.NotNil(t, p.transactions)
}

func TestPaddleProvider_CreateSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	req := SessionRequest{
		Email:            "jane@example.com",
		ProductReference: "pri_123",
		Redirect: RedirectTargets{
			SuccessURL: "https://example.com/thanks",
			CancelURL:  "https://example.com/pricing",
		},
	}

	t.Run("builds catalog transaction", func(t *testing.T) {
		t.Parallel()
		fake := &fakeTransactions{err: errors.New("stop")}
		p := &PaddleProvider{transactions: fake}

		_, err := p.CreateSession(ctx, req)
		require.Error(t, err)

		require.NotNil(t, fake.req)
		assert.Len(t, fake.req.Items, 1)
		assert.Equal(t, "jane@example.com", fake.req.CustomData["email"])
		assert.Equal(t, "https://example.com/pricing", fake.req.CustomData["cancel_url"])
		require.NotNil(t, fake.req.Checkout)
		require.NotNil(t, fake.req.Checkout.URL)
		assert.Equal(t, "https://example.com/thanks", *fake.req.Checkout.URL)
	})

	t.Run("transaction error", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("unauthorized")
		p := &PaddleProvider{transactions: &fakeTransactions{err: boom}}

		_, err := p.CreateSession(ctx, req)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("missing checkout URL", func(t *testing.T) {
		t.Parallel()
		p := &PaddleProvider{transactions: &fakeTransactions{res: &paddle.Transaction{ID: "txn_1"}}}

		_, err := p.CreateSession(ctx, req)
		assert.ErrorIs(t, err, ErrNoCheckoutURL)
	})
}
