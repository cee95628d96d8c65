package webhook

import "errors"

var (
	ErrMissingSecret            = errors.New("webhook secret is required")
	ErrMissingSignature         = errors.New("webhook signature is missing")
	ErrEmptyPayload             = errors.New("webhook payload cannot be empty")
	ErrSignatureMismatch        = errors.New("webhook signature mismatch")
	ErrInvalidSignatureEncoding = errors.New("webhook signature is not valid hex")
)
