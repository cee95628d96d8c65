package billing_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lanternclub/membergate/billing"
)

func newProvider(t *testing.T, handler http.HandlerFunc, timeout time.Duration) *billing.HTTPProvider {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := billing.NewHTTPProvider(billing.HTTPConfig{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Timeout: timeout,
	})
	require.NoError(t, err)
	return p
}

func TestNewHTTPProvider(t *testing.T) {
	t.Parallel()

	_, err := billing.NewHTTPProvider(billing.HTTPConfig{})
	require.ErrorIs(t, err, billing.ErrInvalidConfig)
}

func TestHTTPProviderVerifyOrder(t *testing.T) {
	t.Parallel()

	t.Run("valid order", func(t *testing.T) {
		t.Parallel()

		p := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/orders/ord_123", r.URL.Path)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"valid":true,"email":"a@b.com","name":"Ada Lovelace"}`))
		}, time.Second)

		order, err := p.VerifyOrder(context.Background(), "ord_123")
		require.NoError(t, err)
		assert.True(t, order.Valid)
		assert.Equal(t, "a@b.com", order.Email)
		assert.Equal(t, "Ada Lovelace", order.Name)
	})

	t.Run("invalid order", func(t *testing.T) {
		t.Parallel()

		p := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"valid":false}`))
		}, time.Second)

		order, err := p.VerifyOrder(context.Background(), "ord_bad")
		require.NoError(t, err)
		assert.False(t, order.Valid)
	})

	t.Run("unknown order", func(t *testing.T) {
		t.Parallel()

		p := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}, time.Second)

		_, err := p.VerifyOrder(context.Background(), "ord_missing")
		require.ErrorIs(t, err, billing.ErrOrderNotFound)
	})

	t.Run("server error is unavailability", func(t *testing.T) {
		t.Parallel()

		p := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}, time.Second)

		_, err := p.VerifyOrder(context.Background(), "ord_123")
		require.ErrorIs(t, err, billing.ErrProviderUnavailable)
	})

	t.Run("timeout is unavailability", func(t *testing.T) {
		t.Parallel()

		p := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}, 20*time.Millisecond)

		_, err := p.VerifyOrder(context.Background(), "ord_123")
		require.ErrorIs(t, err, billing.ErrProviderUnavailable)
	})

	t.Run("context deadline is unavailability", func(t *testing.T) {
		t.Parallel()

		p := newProvider(t, func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}, time.Second)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err := p.VerifyOrder(ctx, "ord_123")
		require.ErrorIs(t, err, billing.ErrProviderUnavailable)
	})

	t.Run("empty order id", func(t *testing.T) {
		t.Parallel()

		p := newProvider(t, func(w http.ResponseWriter, r *http.Request) {}, time.Second)
		_, err := p.VerifyOrder(context.Background(), "")
		require.ErrorIs(t, err, billing.ErrMissingOrderID)
	})
}
