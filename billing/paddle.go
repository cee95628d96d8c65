package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	paddle "github.com/PaddleHQ/paddle-go-sdk/v4"
	"github.com/PaddleHQ/paddle-go-sdk/v4/pkg/paddleerr"
)

// PaddleConfig holds configuration for the Paddle billing provider.
type PaddleConfig struct {
	APIKey      string `env:"PADDLE_API_KEY"`
	Environment string `env:"PADDLE_ENVIRONMENT" envDefault:"production"`
}

// PaddleProvider verifies orders through the Paddle transactions API.
// The external order id presented after checkout is the Paddle transaction id.
type PaddleProvider struct {
	client *paddle.SDK
}

func NewPaddleProvider(cfg PaddleConfig) (*PaddleProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: paddle API key is required", ErrInvalidConfig)
	}

	var client *paddle.SDK
	var err error

	switch strings.ToLower(cfg.Environment) {
	case "sandbox":
		client, err = paddle.NewSandbox(cfg.APIKey)
	case "production", "":
		client, err = paddle.New(cfg.APIKey)
	default:
		return nil, fmt.Errorf("%w: invalid paddle environment: %s", ErrInvalidConfig, cfg.Environment)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create paddle client: %w", err)
	}

	return &PaddleProvider{client: client}, nil
}

func (p *PaddleProvider) VerifyOrder(ctx context.Context, orderID string) (*Order, error) {
	if orderID == "" {
		return nil, ErrMissingOrderID
	}

	tx, err := p.client.TransactionsClient.GetTransaction(ctx, &paddle.GetTransactionRequest{
		TransactionID: orderID,
	})
	if err != nil {
		return nil, classifyPaddleError(err)
	}

	order := &Order{
		Valid: isPaidStatus(string(tx.Status)),
	}

	// Billed transactions carry a customer reference; resolve it for the
	// claims the handshake builds.
	if tx.CustomerID != nil && *tx.CustomerID != "" {
		customer, err := p.client.CustomersClient.GetCustomer(ctx, &paddle.GetCustomerRequest{
			CustomerID: *tx.CustomerID,
		})
		if err != nil {
			return nil, errors.Join(ErrProviderUnavailable, err)
		}
		order.Email = customer.Email
		if customer.Name != nil {
			order.Name = *customer.Name
		}
	}

	return order, nil
}

// classifyPaddleError maps SDK errors onto the provider error taxonomy. An
// API-level rejection means Paddle does not know this order; anything else
// (network, deadline) is provider unavailability.
func classifyPaddleError(err error) error {
	var apiErr *paddleerr.Error
	if errors.As(err, &apiErr) {
		return errors.Join(ErrOrderNotFound, err)
	}
	return errors.Join(ErrProviderUnavailable, err)
}

// A transaction counts as a confirmed purchase once payment has settled.
func isPaidStatus(status string) bool {
	switch strings.ToLower(status) {
	case "paid", "completed":
		return true
	default:
		return false
	}
}
