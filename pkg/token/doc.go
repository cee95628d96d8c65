// Package token implements HS256 JWT generation and validation for
// self-contained session tokens.
//
// Tokens are validated locally (signature + expiry) without any server-side
// lookup, which keeps authorization checks dependency-free at the cost of
// immediate revocation.
package token
