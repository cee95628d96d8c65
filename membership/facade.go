package membership

import (
	"context"
	"net/http"
)

type claimsCtxKey struct{}

// WithClaims stores verified session claims in the context. The gate does
// this once per request so handlers do not re-verify the cookie.
func WithClaims(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, claimsCtxKey{}, claims)
}

// ClaimsFromContext returns claims previously stored by WithClaims.
func ClaimsFromContext(ctx context.Context) (Claims, bool) {
	claims, ok := ctx.Value(claimsCtxKey{}).(Claims)
	return claims, ok
}

// Members is the read-side facade handlers and templates use to ask about
// the current visitor. It never touches the store; everything it answers
// comes from the signed session.
type Members struct {
	sessions *SessionManager
}

// NewMembers creates the member facade.
func NewMembers(sessions *SessionManager) *Members {
	return &Members{sessions: sessions}
}

// Current returns the visitor's session claims. The request context is
// checked first; outside gated routes the cookie is verified directly.
func (m *Members) Current(r *http.Request) (Claims, bool) {
	if claims, ok := ClaimsFromContext(r.Context()); ok {
		return claims, true
	}

	claims, err := m.sessions.Read(r)
	if err != nil {
		return Claims{}, false
	}
	return claims, true
}

// IsActiveMember reports whether the visitor holds a valid session for an
// active membership.
func (m *Members) IsActiveMember(r *http.Request) bool {
	claims, ok := m.Current(r)
	return ok && claims.IsActive()
}

// Logout expires the visitor's session cookie. Since sessions are stateless
// the token itself stays valid until expiry; logout only removes it from
// the browser.
func (m *Members) Logout(w http.ResponseWriter) {
	m.sessions.Clear(w)
}
