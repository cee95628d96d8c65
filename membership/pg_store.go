package membership

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lanternclub/membergate/pkg/pg"
)

// PgStore is the Postgres-backed Store. All writes go through idempotent
// statements so webhook redeliveries and concurrent handshakes converge on
// the same row.
type PgStore struct {
	pool *pgxpool.Pool
}

// NewPgStore creates a Store backed by the given connection pool.
func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

// Upsert implements Store. On conflict the row is updated in place while
// joined_at and saved_item_refs keep their stored values.
func (s *PgStore) Upsert(ctx context.Context, record SubscriberRecord) (bool, error) {
	const query = `
		INSERT INTO subscribers (
			id, email, name, status, external_order_id, external_customer_id,
			membership_tier, joined_at, saved_item_refs
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, COALESCE($9, '{}'))
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			name = EXCLUDED.name,
			status = EXCLUDED.status,
			external_order_id = EXCLUDED.external_order_id,
			external_customer_id = EXCLUDED.external_customer_id,
			membership_tier = EXCLUDED.membership_tier
		RETURNING (xmax = 0)`

	var inserted bool
	err := s.pool.QueryRow(ctx, query,
		record.ID, record.Email, record.Name, record.Status,
		record.ExternalOrderID, record.ExternalCustomerID,
		record.MembershipTier, record.JoinedAt, record.SavedItemRefs,
	).Scan(&inserted)
	if err != nil {
		return false, storeError("upsert subscriber", err)
	}
	return inserted, nil
}

// FindByID implements Store.
func (s *PgStore) FindByID(ctx context.Context, id uuid.UUID) (*SubscriberRecord, error) {
	const query = `
		SELECT id, email, name, status, external_order_id, external_customer_id,
			membership_tier, joined_at, saved_item_refs
		FROM subscribers WHERE id = $1`

	return s.scanOne(s.pool.QueryRow(ctx, query, id))
}

// FindByOrderID implements Store.
func (s *PgStore) FindByOrderID(ctx context.Context, orderID string) (*SubscriberRecord, error) {
	const query = `
		SELECT id, email, name, status, external_order_id, external_customer_id,
			membership_tier, joined_at, saved_item_refs
		FROM subscribers WHERE external_order_id = $1`

	return s.scanOne(s.pool.QueryRow(ctx, query, orderID))
}

// AppendSavedItem implements Store. The remove-then-append pair keeps the
// array duplicate free without a separate read.
func (s *PgStore) AppendSavedItem(ctx context.Context, id uuid.UUID, ref string) error {
	const query = `
		UPDATE subscribers
		SET saved_item_refs = array_append(array_remove(saved_item_refs, $2), $2)
		WHERE id = $1`

	tag, err := s.pool.Exec(ctx, query, id, ref)
	if err != nil {
		return storeError("append saved item", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSubscriberNotFound
	}
	return nil
}

// RemoveSavedItem implements Store.
func (s *PgStore) RemoveSavedItem(ctx context.Context, id uuid.UUID, ref string) error {
	const query = `
		UPDATE subscribers
		SET saved_item_refs = array_remove(saved_item_refs, $2)
		WHERE id = $1`

	tag, err := s.pool.Exec(ctx, query, id, ref)
	if err != nil {
		return storeError("remove saved item", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSubscriberNotFound
	}
	return nil
}

func (s *PgStore) scanOne(row pgx.Row) (*SubscriberRecord, error) {
	var record SubscriberRecord
	err := row.Scan(
		&record.ID, &record.Email, &record.Name, &record.Status,
		&record.ExternalOrderID, &record.ExternalCustomerID,
		&record.MembershipTier, &record.JoinedAt, &record.SavedItemRefs,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrSubscriberNotFound
		}
		return nil, storeError("find subscriber", err)
	}
	return &record, nil
}

func storeError(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || pg.IsConnectionError(err) {
		return errors.Join(ErrStoreUnavailable, fmt.Errorf("failed to %s: %w", op, err))
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
