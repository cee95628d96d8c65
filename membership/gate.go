package membership

import (
	"net/http"
	"strings"
)

// GateConfig holds access gate settings. Prefix lists are comma separated
// in the environment.
type GateConfig struct {
	ProtectedPrefixes []string `env:"GATE_PROTECTED_PREFIXES" envDefault:"/library,/api/me"`
	AllowedPrefixes   []string `env:"GATE_ALLOWED_PREFIXES" envDefault:"/,/join,/static,/api/webhooks,/api/handshake,/healthz"`
	PaywallPath       string   `env:"GATE_PAYWALL_PATH" envDefault:"/join"`
}

// Gate is the access-control middleware. Requests under a protected prefix
// must carry a valid session for an active membership; everything else
// passes through. Valid sessions are attached to the request context either
// way so downstream handlers can personalize.
type Gate struct {
	sessions *SessionManager
	cfg      GateConfig
}

// NewGate creates the gate middleware.
func NewGate(sessions *SessionManager, cfg GateConfig) *Gate {
	if cfg.PaywallPath == "" {
		cfg.PaywallPath = "/join"
	}
	return &Gate{sessions: sessions, cfg: cfg}
}

// Middleware wraps a handler with the access check.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := g.sessions.Read(r)
		if err == nil {
			r = r.WithContext(WithClaims(r.Context(), claims))
		}

		if !g.isProtected(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		if err != nil || !claims.IsActive() {
			http.Redirect(w, r, g.cfg.PaywallPath, http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// isProtected decides whether a path is behind the gate. The longest
// matching prefix wins, so "/library/preview" can stay open inside a
// protected "/library".
func (g *Gate) isProtected(path string) bool {
	protected, protectedLen := matchPrefix(path, g.cfg.ProtectedPrefixes)
	allowed, allowedLen := matchPrefix(path, g.cfg.AllowedPrefixes)

	if !protected {
		return false
	}
	if allowed && allowedLen >= protectedLen {
		return false
	}
	return true
}

func matchPrefix(path string, prefixes []string) (bool, int) {
	longest := -1
	for _, prefix := range prefixes {
		prefix = strings.TrimSpace(prefix)
		if prefix == "" {
			continue
		}
		if prefix == "/" {
			if longest < 1 {
				longest = 1
			}
			continue
		}
		prefix = strings.TrimSuffix(prefix, "/")
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			if len(prefix) > longest {
				longest = len(prefix)
			}
		}
	}
	return longest >= 0, longest
}
