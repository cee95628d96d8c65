package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/lanternclub/membergate/core"
	"github.com/lanternclub/membergate/membership"
	"github.com/lanternclub/membergate/pkg/logger"
	"github.com/lanternclub/membergate/pkg/webhook"
)

// EventTypeHeader carries the provider's event type on webhook deliveries.
const EventTypeHeader = "X-Event-Type"

// maxWebhookBody bounds webhook payload reads. Provider events are small;
// anything larger is not a legitimate delivery.
const maxWebhookBody = 1 << 20

// webhookAck is the acknowledgment body the provider expects.
type webhookAck struct {
	Received bool `json:"received"`
}

// handleWebhook ingests one webhook delivery. Status codes drive provider
// behavior: 200 stops redelivery, 401 flags a configuration problem, 500
// asks for redelivery later.
func (s *Service) handleWebhook(_ http.ResponseWriter, r *http.Request) core.Response {
	ctx := r.Context()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		s.log.ErrorContext(ctx, "failed to read webhook body", logger.Error(err))
		return core.JSONError(core.ErrBadRequest)
	}

	err = s.ingestor.Ingest(ctx, body,
		r.Header.Get(webhook.SignatureHeader),
		r.Header.Get(EventTypeHeader))
	switch {
	case err == nil:
		return core.JSONRaw(http.StatusOK, webhookAck{Received: true})
	case errors.Is(err, webhook.ErrSignatureMismatch),
		errors.Is(err, webhook.ErrMissingSignature),
		errors.Is(err, webhook.ErrInvalidSignatureEncoding),
		errors.Is(err, webhook.ErrEmptyPayload):
		s.log.WarnContext(ctx, "rejected webhook delivery", logger.Error(err))
		return core.JSONError(core.ErrUnauthorized)
	case errors.Is(err, membership.ErrMalformedEvent):
		// Redelivering the same malformed payload cannot succeed, so the
		// delivery is acknowledged and the payload only logged.
		s.log.ErrorContext(ctx, "acknowledged malformed webhook payload", logger.Error(err))
		return core.JSONRaw(http.StatusOK, webhookAck{Received: true})
	default:
		s.log.ErrorContext(ctx, "webhook ingestion failed", logger.Error(err))
		return core.JSONError(core.ErrInternalServerError)
	}
}
