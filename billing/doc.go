// Package billing abstracts the payment provider's order-verification API
// behind the Provider interface.
//
// Two implementations exist: a generic JSON-over-HTTP client for providers
// exposing a simple order-lookup endpoint, and a Paddle-backed client using
// the official SDK. Both answer exactly one question, "is this order a
// confirmed purchase", and are never consulted for membership state.
package billing
