package ratelimit

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
)

// KeyFunc derives the limiting key for a request.
type KeyFunc func(r *http.Request) string

// KeyByIP keys requests by client address. Pair it with a trusted proxy
// middleware that rewrites RemoteAddr, otherwise the proxy gets limited.
func KeyByIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Middleware applies the limiter to every request. Denied requests get a
// 429 with Retry-After; limiter failures are logged and let through.
func Middleware(limiter Limiter, keyFn KeyFunc, log *slog.Logger) func(http.Handler) http.Handler {
	if keyFn == nil {
		keyFn = KeyByIP
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			result, err := limiter.Allow(r.Context(), keyFn(r))
			if err != nil {
				log.ErrorContext(r.Context(), "rate limiter unavailable, failing open",
					slog.Any("error", err))
				next.ServeHTTP(w, r)
				return
			}

			if !result.Allowed {
				seconds := int(result.RetryAfter.Seconds())
				if seconds < 1 {
					seconds = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(seconds))
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
