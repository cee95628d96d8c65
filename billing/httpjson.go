package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// HTTPConfig configures the generic JSON-over-HTTP provider.
type HTTPConfig struct {
	BaseURL string        `env:"BILLING_HTTP_BASE_URL"`                // BaseURL of the provider's order API.
	APIKey  string        `env:"BILLING_HTTP_API_KEY"`                 // APIKey sent as a bearer token.
	Timeout time.Duration `env:"BILLING_HTTP_TIMEOUT" envDefault:"5s"` // Timeout for a single lookup.
}

// HTTPProvider verifies orders against a provider exposing
// GET {base}/orders/{id} returning {"valid": bool, "email": ..., "name": ...}.
type HTTPProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewHTTPProvider(cfg HTTPConfig) (*HTTPProvider, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: base URL is required", ErrInvalidConfig)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPProvider{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

func (p *HTTPProvider) VerifyOrder(ctx context.Context, orderID string) (*Order, error) {
	if orderID == "" {
		return nil, ErrMissingOrderID
	}

	endpoint := fmt.Sprintf("%s/orders/%s", p.baseURL, url.PathEscape(orderID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrProviderUnavailable, err)
	}
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		// Timeouts and cancellations land here; the caller treats any
		// unavailability as an unverified order.
		return nil, errors.Join(ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrOrderNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: unexpected status %d", ErrProviderUnavailable, resp.StatusCode)
	}

	var body struct {
		Valid bool   `json:"valid"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errors.Join(ErrProviderUnavailable, err)
	}

	return &Order{Valid: body.Valid, Email: body.Email, Name: body.Name}, nil
}
