package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// SignatureHeader is the HTTP header carrying the provider's payload signature.
const SignatureHeader = "X-Signature"

// SignPayload computes the hex-encoded HMAC-SHA256 digest of payload keyed by
// secret. It is the counterpart of VerifySignature and is used by tests and by
// outbound deliveries to trusted collaborators.
func SignPayload(secret string, payload []byte) (string, error) {
	if secret == "" {
		return "", ErrMissingSecret
	}
	if len(payload) == 0 {
		return "", ErrEmptyPayload
	}

	h := hmac.New(sha256.New, []byte(secret))
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// VerifySignature validates that signature is the HMAC-SHA256 digest of the
// raw, unparsed payload keyed by secret. The payload must be the exact bytes
// that arrived on the wire; re-serialized JSON is not guaranteed to match the
// signed bytes and must never be passed here.
//
// Comparison is constant-time to eliminate timing side channels. A missing
// secret or missing signature always fails verification.
func VerifySignature(secret string, payload []byte, signature string) error {
	if secret == "" {
		return ErrMissingSecret
	}
	if signature == "" {
		return ErrMissingSignature
	}
	if len(payload) == 0 {
		return ErrEmptyPayload
	}

	provided, err := hex.DecodeString(signature)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidSignatureEncoding, err)
	}

	h := hmac.New(sha256.New, []byte(secret))
	h.Write(payload)

	if !hmac.Equal(h.Sum(nil), provided) {
		return ErrSignatureMismatch
	}
	return nil
}
