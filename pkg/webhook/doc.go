// Package webhook implements HMAC-SHA256 payload signing and verification for
// inbound provider webhooks.
//
// Signatures are computed over the raw, unparsed request body and compared in
// constant time. Handlers must read the body before any JSON decoding and pass
// those exact bytes to VerifySignature; re-serialized payloads are a
// correctness bug because the provider signed the wire bytes, not a
// re-encoding of them.
//
// # Usage
//
//	body, _ := io.ReadAll(r.Body)
//	if err := webhook.VerifySignature(secret, body, r.Header.Get(webhook.SignatureHeader)); err != nil {
//		// reject with 401 before any parsing or storage mutation
//	}
package webhook
