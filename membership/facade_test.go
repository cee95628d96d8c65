package membership_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lanternclub/membergate/membership"
)

func TestMembersCurrent(t *testing.T) {
	t.Parallel()

	t.Run("reads from the session cookie", func(t *testing.T) {
		t.Parallel()

		sessions := newTestSessionManager(t)
		members := membership.NewMembers(sessions)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		for _, c := range issueSession(t, sessions, membership.Claims{
			FirstName: "Jane", Status: membership.StatusActive,
		}) {
			req.AddCookie(c)
		}

		claims, ok := members.Current(req)
		require.True(t, ok)
		assert.Equal(t, "Jane", claims.FirstName)
		assert.True(t, members.IsActiveMember(req))
	})

	t.Run("prefers context claims set by the gate", func(t *testing.T) {
		t.Parallel()

		sessions := newTestSessionManager(t)
		members := membership.NewMembers(sessions)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(membership.WithClaims(req.Context(), membership.Claims{
			FirstName: "Ctx", Status: membership.StatusActive,
		}))

		claims, ok := members.Current(req)
		require.True(t, ok)
		assert.Equal(t, "Ctx", claims.FirstName)
	})

	t.Run("no session means anonymous", func(t *testing.T) {
		t.Parallel()

		members := membership.NewMembers(newTestSessionManager(t))
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		_, ok := members.Current(req)
		assert.False(t, ok)
		assert.False(t, members.IsActiveMember(req))
	})

	t.Run("inactive member is not an active member", func(t *testing.T) {
		t.Parallel()

		sessions := newTestSessionManager(t)
		members := membership.NewMembers(sessions)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		for _, c := range issueSession(t, sessions, membership.Claims{Status: membership.StatusInactive}) {
			req.AddCookie(c)
		}

		claims, ok := members.Current(req)
		require.True(t, ok, "the session itself is valid")
		assert.False(t, claims.IsActive())
		assert.False(t, members.IsActiveMember(req))
	})
}

func TestMembersLogout(t *testing.T) {
	t.Parallel()

	sessions := newTestSessionManager(t)
	members := membership.NewMembers(sessions)

	rec := httptest.NewRecorder()
	members.Logout(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "member_session", cookies[0].Name)
	assert.Negative(t, cookies[0].MaxAge)
}
