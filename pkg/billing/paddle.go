package billing

import (
	"context"
	"fmt"
	"strings"

	paddle "github.com/PaddleHQ/paddle-go-sdk/v4"
)

// PaddleConfig holds configuration for the Paddle provider.
type PaddleConfig struct {
	APIKey      string `env:"PADDLE_API_KEY,required"`
	Environment string `env:"PADDLE_ENVIRONMENT" envDefault:"production"`
}

// transactionCreator is the part of the Paddle SDK the provider uses.
type transactionCreator interface {
	CreateTransaction(ctx context.Context, req *paddle.CreateTransactionRequest) (*paddle.Transaction, error)
}

// PaddleProvider implements Provider with Paddle Billing transactions.
type PaddleProvider struct {
	transactions transactionCreator
}

// NewPaddleProvider creates a Paddle provider for the configured environment.
func NewPaddleProvider(config PaddleConfig) (*PaddleProvider, error) {
	if config.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	var client *paddle.SDK
	var err error

	switch strings.ToLower(config.Environment) {
	case "sandbox":
		client, err = paddle.NewSandbox(config.APIKey)
	case "production", "":
		client, err = paddle.New(config.APIKey)
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidProviderEnvironment, config.Environment)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create paddle client: %w", err)
	}

	return &PaddleProvider{transactions: client.TransactionsClient}, nil
}

// CreateSession creates a Paddle transaction for one unit of the catalog price
// and returns its hosted checkout URL.
func (p *PaddleProvider) CreateSession(ctx context.Context, req SessionRequest) (Session, error) {
	transaction, err := p.transactions.CreateTransaction(ctx, newTransactionRequest(req))
	if err != nil {
		return Session{}, fmt.Errorf("failed to create paddle transaction: %w", err)
	}

	if transaction.Checkout == nil || transaction.Checkout.URL == nil || *transaction.Checkout.URL == "" {
		return Session{}, ErrNoCheckoutURL
	}

	return Session{
		ID:  transaction.ID,
		URL: *transaction.Checkout.URL,
	}, nil
}

func newTransactionRequest(req SessionRequest) *paddle.CreateTransactionRequest {
	item := paddle.NewCreateTransactionItemsTransactionItemFromCatalog(&paddle.TransactionItemFromCatalog{
		PriceID:  req.ProductReference,
		Quantity: 1,
	})

	// Paddle links customers by its own ID; the address travels as custom data.
	transactionReq := &paddle.CreateTransactionRequest{
		Items: []paddle.CreateTransactionItems{*item},
		CustomData: paddle.CustomData{
			"email": req.Email,
		},
	}
	if req.Redirect.CancelURL != "" {
		transactionReq.CustomData["cancel_url"] = req.Redirect.CancelURL
	}

	if req.Redirect.SuccessURL != "" {
		transactionReq.Checkout = &paddle.TransactionCheckout{
			URL: paddle.PtrTo(req.Redirect.SuccessURL),
		}
	}

	return transactionReq
}
