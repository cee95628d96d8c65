// Package httpserver wraps net/http with graceful shutdown on OS signals or
// context cancellation, env-driven timeouts, and probe handlers.
package httpserver
