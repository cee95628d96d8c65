package billing

import (
	"context"
	"errors"
	"time"
)

// Order is the provider's answer to "did this purchase happen".
// It is authoritative for payment validity only; membership state lives in
// the subscriber store.
type Order struct {
	Valid bool
	Email string
	Name  string
}

// Provider verifies orders against the payment provider's live API.
// Implementations must honor context cancellation: the handshake path calls
// VerifyOrder with a deadline and treats expiry as verification failure.
type Provider interface {
	VerifyOrder(ctx context.Context, orderID string) (*Order, error)
}

// Config selects and configures the provider implementation.
type Config struct {
	Kind    string        `env:"BILLING_PROVIDER" envDefault:"http"`     // Kind is "http" or "paddle".
	Timeout time.Duration `env:"BILLING_VERIFY_TIMEOUT" envDefault:"5s"` // Timeout bounds a single VerifyOrder call.
}

var (
	ErrMissingOrderID      = errors.New("billing: order id is required")
	ErrOrderNotFound       = errors.New("billing: order not found")
	ErrProviderUnavailable = errors.New("billing: provider unavailable")
	ErrInvalidConfig       = errors.New("billing: invalid provider configuration")
)
