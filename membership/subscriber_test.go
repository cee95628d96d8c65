package membership_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lanternclub/membergate/membership"
)

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already canonical", "jane@example.com", "jane@example.com"},
		{"uppercase folded", "Jane.Doe@Example.COM", "janedoe@example.com"},
		{"surrounding whitespace", "  jane@example.com \n", "jane@example.com"},
		{"plus tag stripped", "jane+newsletter@example.com", "jane@example.com"},
		{"dots stripped from local part", "j.a.n.e@example.com", "jane@example.com"},
		{"domain dots preserved", "jane@mail.example.co.uk", "jane@mail.example.co.uk"},
		{"dots and tag together", "Jane.Doe+promo@example.com", "janedoe@example.com"},
		{"no at sign passes through", "not-an-email", "not-an-email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, membership.NormalizeEmail(tt.input))
		})
	}
}

func TestSubscriberID(t *testing.T) {
	t.Parallel()

	t.Run("deterministic", func(t *testing.T) {
		t.Parallel()
		require.Equal(t,
			membership.SubscriberID("jane@example.com"),
			membership.SubscriberID("jane@example.com"))
	})

	t.Run("spelling variants share an id", func(t *testing.T) {
		t.Parallel()
		base := membership.SubscriberID("jane@example.com")
		assert.Equal(t, base, membership.SubscriberID("Jane@Example.com"))
		assert.Equal(t, base, membership.SubscriberID("j.ane+tag@example.com"))
		assert.Equal(t, base, membership.SubscriberID("  jane@example.com"))
	})

	t.Run("distinct emails get distinct ids", func(t *testing.T) {
		t.Parallel()
		assert.NotEqual(t,
			membership.SubscriberID("jane@example.com"),
			membership.SubscriberID("john@example.com"))
	})
}

func TestSubscriberRecordFirstName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		record membership.SubscriberRecord
		want   string
	}{
		{"full name", membership.SubscriberRecord{Name: "Jane Doe"}, "Jane"},
		{"single token", membership.SubscriberRecord{Name: "Jane"}, "Jane"},
		{"empty name", membership.SubscriberRecord{}, ""},
		{"padded name", membership.SubscriberRecord{Name: "  Jane   Q  Doe "}, "Jane"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.record.FirstName())
		})
	}
}

func TestSubscriberRecordIsActive(t *testing.T) {
	t.Parallel()

	active := &membership.SubscriberRecord{Status: membership.StatusActive}
	inactive := &membership.SubscriberRecord{Status: membership.StatusInactive}
	var nilRecord *membership.SubscriberRecord

	assert.True(t, active.IsActive())
	assert.False(t, inactive.IsActive())
	assert.False(t, nilRecord.IsActive())
}
