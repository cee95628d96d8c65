package membership

import "errors"

var (
	// ErrMalformedEvent marks payloads that cannot be normalized into a
	// SubscriptionEvent. Deliveries failing this way are acknowledged to
	// the provider (redelivery cannot fix them) but never stored.
	ErrMalformedEvent = errors.New("membership: malformed subscription event")

	// ErrSubscriberNotFound is returned by store lookups with no match.
	ErrSubscriberNotFound = errors.New("membership: subscriber not found")

	// ErrStoreUnavailable marks retryable storage failures. The webhook
	// endpoint surfaces these as server errors so the provider redelivers.
	ErrStoreUnavailable = errors.New("membership: subscriber store unavailable")

	// ErrUnknownTier is returned when a tier id is not in the catalog.
	ErrUnknownTier = errors.New("membership: unknown membership tier")
)
