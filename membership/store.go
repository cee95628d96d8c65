package membership

import (
	"context"

	"github.com/google/uuid"
)

// Store persists subscriber records. Upsert must be idempotent: applying the
// same record any number of times leaves the store in the same state.
type Store interface {
	// Upsert inserts the record or updates the existing row with the same
	// id. JoinedAt and SavedItemRefs of an existing row are preserved.
	// Returns true when a new row was created.
	Upsert(ctx context.Context, record SubscriberRecord) (created bool, err error)

	// FindByID returns the record with the given subscriber id, or
	// ErrSubscriberNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (*SubscriberRecord, error)

	// FindByOrderID returns the record whose external order id matches, or
	// ErrSubscriberNotFound.
	FindByOrderID(ctx context.Context, orderID string) (*SubscriberRecord, error)

	// AppendSavedItem adds a content ref to the subscriber's saved list.
	// Adding an already present ref is a no-op.
	AppendSavedItem(ctx context.Context, id uuid.UUID, ref string) error

	// RemoveSavedItem removes a content ref from the saved list. Removing
	// an absent ref is a no-op.
	RemoveSavedItem(ctx context.Context, id uuid.UUID, ref string) error
}
