// Package ratelimit provides fixed-window request limiting backed by Redis,
// with an in-memory variant for tests and single-node development.
package ratelimit

import (
	"context"
	"errors"
	"time"
)

// ErrLimiterUnavailable marks backend failures. The middleware fails open
// on it: a limiter outage must not take the endpoint down with it.
var ErrLimiterUnavailable = errors.New("ratelimit: limiter unavailable")

// Result describes one limiting decision.
type Result struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// Limiter decides whether the caller identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

// Config holds limiter settings.
type Config struct {
	Limit  int           `env:"RATELIMIT_REQUESTS" envDefault:"20"` // Limit is the number of requests allowed per window.
	Window time.Duration `env:"RATELIMIT_WINDOW" envDefault:"1m"`   // Window is the fixed window length.
}
