package membership_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lanternclub/membergate/membership"
)

func newTestGate(t *testing.T) (*membership.Gate, *membership.SessionManager) {
	t.Helper()
	sessions := newTestSessionManager(t)
	gate := membership.NewGate(sessions, membership.GateConfig{
		ProtectedPrefixes: []string{"/library", "/api/me"},
		AllowedPrefixes:   []string{"/", "/join", "/library/preview"},
		PaywallPath:       "/join",
	})
	return gate, sessions
}

func gateHandler(gate *membership.Gate) http.Handler {
	return gate.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims, ok := membership.ClaimsFromContext(r.Context()); ok {
			w.Header().Set("X-First-Name", claims.FirstName)
		}
		w.WriteHeader(http.StatusOK)
	}))
}

func issueSession(t *testing.T, sessions *membership.SessionManager, claims membership.Claims) []*http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, sessions.Issue(rec, claims))
	return rec.Result().Cookies()
}

func TestGateMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("open paths pass without a session", func(t *testing.T) {
		t.Parallel()

		gate, _ := newTestGate(t)
		handler := gateHandler(gate)

		for _, path := range []string{"/", "/join", "/about", "/library/preview/essay-1"} {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusOK, rec.Code, "path %s", path)
		}
	})

	t.Run("protected path without a session redirects to the paywall", func(t *testing.T) {
		t.Parallel()

		gate, _ := newTestGate(t)
		rec := httptest.NewRecorder()
		gateHandler(gate).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/library/essay-1", nil))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/join", rec.Header().Get("Location"))
	})

	t.Run("active session passes the gate", func(t *testing.T) {
		t.Parallel()

		gate, sessions := newTestGate(t)
		req := httptest.NewRequest(http.MethodGet, "/library/essay-1", nil)
		for _, c := range issueSession(t, sessions, membership.Claims{
			FirstName: "Jane", Status: membership.StatusActive,
		}) {
			req.AddCookie(c)
		}

		rec := httptest.NewRecorder()
		gateHandler(gate).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Jane", rec.Header().Get("X-First-Name"), "claims reach the handler")
	})

	t.Run("inactive session is redirected", func(t *testing.T) {
		t.Parallel()

		gate, sessions := newTestGate(t)
		req := httptest.NewRequest(http.MethodGet, "/library/essay-1", nil)
		for _, c := range issueSession(t, sessions, membership.Claims{Status: membership.StatusInactive}) {
			req.AddCookie(c)
		}

		rec := httptest.NewRecorder()
		gateHandler(gate).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
	})

	t.Run("garbage cookie is redirected", func(t *testing.T) {
		t.Parallel()

		gate, _ := newTestGate(t)
		req := httptest.NewRequest(http.MethodGet, "/library/essay-1", nil)
		req.AddCookie(&http.Cookie{Name: "member_session", Value: "not.a.token"})

		rec := httptest.NewRecorder()
		gateHandler(gate).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
	})

	t.Run("claims attach on open paths too", func(t *testing.T) {
		t.Parallel()

		gate, sessions := newTestGate(t)
		req := httptest.NewRequest(http.MethodGet, "/about", nil)
		for _, c := range issueSession(t, sessions, membership.Claims{
			FirstName: "Jane", Status: membership.StatusActive,
		}) {
			req.AddCookie(c)
		}

		rec := httptest.NewRecorder()
		gateHandler(gate).ServeHTTP(rec, req)
		assert.Equal(t, "Jane", rec.Header().Get("X-First-Name"))
	})
}
