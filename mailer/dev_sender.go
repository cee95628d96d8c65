package mailer

import (
	"context"
	"log/slog"
)

// DevSender implements EmailSender for development: it logs the email
// instead of sending it.
type DevSender struct {
	log *slog.Logger
}

func NewDevSender(log *slog.Logger) EmailSender {
	return &DevSender{log: log}
}

func (d *DevSender) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	d.log.InfoContext(ctx, "dev mailer: email suppressed",
		slog.String("send_to", params.SendTo),
		slog.String("subject", params.Subject),
		slog.String("tag", params.Tag),
	)
	return nil
}
