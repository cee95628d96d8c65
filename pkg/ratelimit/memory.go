package ratelimit

import (
	"context"
	"sync"
	"time"
)

type window struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter is a process-local fixed-window limiter. State is not
// shared between instances, so it suits tests and single-node setups only.
type MemoryLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	cfg     Config
	now     func() time.Time
}

// NewMemoryLimiter creates an in-memory limiter.
func NewMemoryLimiter(cfg Config) *MemoryLimiter {
	if cfg.Limit <= 0 {
		cfg.Limit = 20
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	return &MemoryLimiter{windows: make(map[string]*window), cfg: cfg, now: time.Now}
}

// Allow implements Limiter.
func (l *MemoryLimiter) Allow(_ context.Context, key string) (Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok || now.After(w.resetAt) {
		w = &window{resetAt: now.Add(l.cfg.Window)}
		l.windows[key] = w
	}

	w.count++
	if w.count > l.cfg.Limit {
		return Result{Allowed: false, RetryAfter: w.resetAt.Sub(now)}, nil
	}
	return Result{Allowed: true, Remaining: l.cfg.Limit - w.count}, nil
}
