package billing

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/PaddleHQ/paddle-go-sdk/v4/pkg/paddleerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaddleProvider(t *testing.T) {
	t.Parallel()

	t.Run("missing api key", func(t *testing.T) {
		t.Parallel()
		_, err := NewPaddleProvider(PaddleConfig{})
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("unknown environment", func(t *testing.T) {
		t.Parallel()
		_, err := NewPaddleProvider(PaddleConfig{APIKey: "key", Environment: "staging"})
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("sandbox", func(t *testing.T) {
		t.Parallel()
		p, err := NewPaddleProvider(PaddleConfig{APIKey: "key", Environment: "sandbox"})
		require.NoError(t, err)
		require.NotNil(t, p)
	})
}

func TestPaddleProviderVerifyOrder_EmptyOrderID(t *testing.T) {
	t.Parallel()

	p, err := NewPaddleProvider(PaddleConfig{APIKey: "key", Environment: "sandbox"})
	require.NoError(t, err)

	_, err = p.VerifyOrder(context.Background(), "")
	require.ErrorIs(t, err, ErrMissingOrderID)
}

func TestClassifyPaddleError(t *testing.T) {
	t.Parallel()

	t.Run("api error means unknown order", func(t *testing.T) {
		t.Parallel()

		err := classifyPaddleError(&paddleerr.Error{})
		require.ErrorIs(t, err, ErrOrderNotFound)
		assert.NotErrorIs(t, err, ErrProviderUnavailable)
	})

	t.Run("wrapped api error still matches", func(t *testing.T) {
		t.Parallel()

		err := classifyPaddleError(fmt.Errorf("get transaction: %w", &paddleerr.Error{}))
		require.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("transport error means unavailability", func(t *testing.T) {
		t.Parallel()

		err := classifyPaddleError(errors.New("connection refused"))
		require.ErrorIs(t, err, ErrProviderUnavailable)
		assert.NotErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("deadline means unavailability", func(t *testing.T) {
		t.Parallel()

		err := classifyPaddleError(context.DeadlineExceeded)
		require.ErrorIs(t, err, ErrProviderUnavailable)
	})
}

func TestIsPaidStatus(t *testing.T) {
	t.Parallel()

	assert.True(t, isPaidStatus("paid"))
	assert.True(t, isPaidStatus("Completed"))
	assert.False(t, isPaidStatus("past_due"))
	assert.False(t, isPaidStatus(""))
}
