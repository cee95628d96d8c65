package membership

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lanternclub/membergate/mailer"
	"github.com/lanternclub/membergate/pkg/logger"
	"github.com/lanternclub/membergate/pkg/webhook"
)

// IngestConfig holds webhook ingestion settings.
type IngestConfig struct {
	WebhookSecret string `env:"SUBSCRIPTION_WEBHOOK_SECRET,required"`
}

// Ingestor runs the webhook pipeline: verify the raw delivery, normalize it
// into a SubscriptionEvent, and apply it to the subscriber store.
type Ingestor struct {
	store  Store
	email  mailer.EmailSender
	log    *slog.Logger
	secret string
}

// NewIngestor wires the ingestion pipeline. The email sender is optional;
// without one no welcome email is sent.
func NewIngestor(store Store, email mailer.EmailSender, log *slog.Logger, cfg IngestConfig) (*Ingestor, error) {
	if store == nil {
		return nil, fmt.Errorf("membership: ingestor requires a store")
	}
	if cfg.WebhookSecret == "" {
		return nil, webhook.ErrMissingSecret
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Ingestor{store: store, email: email, log: log, secret: cfg.WebhookSecret}, nil
}

// Ingest processes one raw webhook delivery. Signature verification runs
// against the exact bytes received, before any parsing. Unknown event kinds
// and malformed payloads return ErrMalformedEvent wrapped errors or nil so
// callers can acknowledge them; redelivery cannot fix either.
func (in *Ingestor) Ingest(ctx context.Context, rawBody []byte, signature, eventType string) error {
	if err := webhook.VerifySignature(in.secret, rawBody, signature); err != nil {
		return err
	}

	event, err := NormalizeEvent(rawBody, eventType)
	if err != nil {
		return err
	}

	if event.Kind == EventUnknown {
		in.log.InfoContext(ctx, "ignoring unknown subscription event",
			logger.EventType(eventType))
		return nil
	}

	return in.Apply(ctx, event)
}

// Apply upserts the subscriber record an event describes. Applying the same
// event any number of times converges on the same stored state.
func (in *Ingestor) Apply(ctx context.Context, event *SubscriptionEvent) error {
	status := StatusActive
	if event.Kind == EventCancelled {
		status = StatusInactive
	}

	record := SubscriberRecord{
		ID:                 SubscriberID(event.SubscriberEmail),
		Email:              NormalizeEmail(event.SubscriberEmail),
		Name:               event.SubscriberName,
		Status:             status,
		ExternalOrderID:    event.ExternalOrderID,
		ExternalCustomerID: event.ExternalCustomerID,
		MembershipTier:     event.MembershipTier,
		JoinedAt:           event.OccurredAt,
		// An empty slice, not nil: the store column is NOT NULL and a nil
		// slice binds as SQL NULL.
		SavedItemRefs: []string{},
	}

	created, err := in.store.Upsert(ctx, record)
	if err != nil {
		return fmt.Errorf("failed to apply subscription event: %w", err)
	}

	in.log.InfoContext(ctx, "subscription event applied",
		logger.EventType(string(event.Kind)),
		logger.SubscriberID(record.ID.String()),
		slog.Bool("created", created))

	if created && event.Kind == EventCreated {
		in.sendWelcomeEmail(ctx, record)
	}
	return nil
}

// sendWelcomeEmail is best effort. A failed send never fails ingestion;
// the provider must not redeliver a stored event over an email hiccup.
func (in *Ingestor) sendWelcomeEmail(ctx context.Context, record SubscriberRecord) {
	if in.email == nil {
		return
	}

	name := record.FirstName()
	if name == "" {
		name = "there"
	}

	err := in.email.SendEmail(ctx, mailer.SendEmailParams{
		SendTo:  record.Email,
		Subject: "Welcome to the club",
		BodyHTML: fmt.Sprintf(
			"<p>Hi %s,</p><p>Your membership is active. Enjoy the library.</p>", name),
		Tag: "welcome",
	})
	if err != nil {
		in.log.ErrorContext(ctx, "failed to send welcome email",
			logger.SubscriberID(record.ID.String()), logger.Error(err))
	}
}
