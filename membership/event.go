package membership

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventKind is the canonical, provider-agnostic webhook event classification.
type EventKind string

const (
	EventCreated   EventKind = "created"
	EventRenewed   EventKind = "renewed"
	EventCancelled EventKind = "cancelled"
	EventUnknown   EventKind = "unknown"
)

// SubscriptionEvent is the canonical form of one verified webhook delivery.
// It is immutable and never persisted; only its effects on the subscriber
// store are.
type SubscriptionEvent struct {
	Kind               EventKind
	SubscriberEmail    string
	SubscriberName     string
	ExternalOrderID    string
	ExternalCustomerID string
	MembershipTier     string
	OccurredAt         time.Time
}

// eventPayload is the provider's attribute schema.
type eventPayload struct {
	Attributes struct {
		Email      string `json:"email"`
		Name       string `json:"name"`
		OrderID    string `json:"order_id"`
		CustomerID string `json:"customer_id"`
		Tier       string `json:"tier"`
		OccurredAt string `json:"occurred_at"`
	} `json:"attributes"`
}

// NormalizeEvent parses a verified webhook body into a SubscriptionEvent.
// Unknown event-type headers map to EventUnknown so new provider event
// types degrade gracefully instead of breaking ingestion. A missing email
// is a normalization error: partial subscriber records are forbidden.
func NormalizeEvent(verifiedBody []byte, eventTypeHeader string) (*SubscriptionEvent, error) {
	var payload eventPayload
	if err := json.Unmarshal(verifiedBody, &payload); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedEvent, err)
	}

	attrs := payload.Attributes
	if attrs.Email == "" {
		return nil, fmt.Errorf("%w: subscriber email is required", ErrMalformedEvent)
	}

	occurredAt := time.Now().UTC()
	if attrs.OccurredAt != "" {
		parsed, err := time.Parse(time.RFC3339, attrs.OccurredAt)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid occurred_at: %s", ErrMalformedEvent, err)
		}
		occurredAt = parsed.UTC()
	}

	return &SubscriptionEvent{
		Kind:               mapEventKind(eventTypeHeader),
		SubscriberEmail:    attrs.Email,
		SubscriberName:     attrs.Name,
		ExternalOrderID:    attrs.OrderID,
		ExternalCustomerID: attrs.CustomerID,
		MembershipTier:     attrs.Tier,
		OccurredAt:         occurredAt,
	}, nil
}

func mapEventKind(eventType string) EventKind {
	switch eventType {
	case "subscription.created", "transaction.completed":
		return EventCreated
	case "subscription.renewed", "subscription.payment_succeeded":
		return EventRenewed
	case "subscription.cancelled", "subscription.canceled":
		return EventCancelled
	default:
		return EventUnknown
	}
}
