package membership_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lanternclub/membergate/membership"
)

func newTestSessionManager(t *testing.T) *membership.SessionManager {
	t.Helper()
	manager, err := membership.NewSessionManager(membership.SessionConfig{
		SigningKey: "test-signing-key-32-bytes-long!!",
	})
	require.NoError(t, err)
	return manager
}

// cookieRequest carries the cookies a previous response set.
func cookieRequest(t *testing.T, rec *httptest.ResponseRecorder) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/library", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestSessionManagerRoundTrip(t *testing.T) {
	t.Parallel()

	t.Run("issue then read", func(t *testing.T) {
		t.Parallel()

		manager := newTestSessionManager(t)
		rec := httptest.NewRecorder()

		require.NoError(t, manager.Issue(rec, membership.Claims{
			FirstName: "Jane",
			Cohort:    "Founding Member",
			Status:    membership.StatusActive,
		}))

		claims, err := manager.Read(cookieRequest(t, rec))
		require.NoError(t, err)
		assert.Equal(t, "Jane", claims.FirstName)
		assert.Equal(t, "Founding Member", claims.Cohort)
		assert.True(t, claims.IsActive())
		assert.Greater(t, claims.ExpiresAt, time.Now().Unix())
	})

	t.Run("cookie attributes", func(t *testing.T) {
		t.Parallel()

		manager := newTestSessionManager(t)
		rec := httptest.NewRecorder()
		require.NoError(t, manager.Issue(rec, membership.Claims{Status: membership.StatusActive}))

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "member_session", cookies[0].Name)
		assert.True(t, cookies[0].HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
	})

	t.Run("missing cookie", func(t *testing.T) {
		t.Parallel()

		manager := newTestSessionManager(t)
		req := httptest.NewRequest(http.MethodGet, "/library", nil)

		_, err := manager.Read(req)
		assert.Error(t, err)
	})

	t.Run("tampered token is rejected", func(t *testing.T) {
		t.Parallel()

		manager := newTestSessionManager(t)
		rec := httptest.NewRecorder()
		require.NoError(t, manager.Issue(rec, membership.Claims{Status: membership.StatusActive}))

		cookie := rec.Result().Cookies()[0]
		parts := strings.Split(cookie.Value, ".")
		require.Len(t, parts, 3)

		tampered := []byte(parts[1])
		if tampered[0] == 'A' {
			tampered[0] = 'B'
		} else {
			tampered[0] = 'A'
		}
		cookie.Value = parts[0] + "." + string(tampered) + "." + parts[2]

		req := httptest.NewRequest(http.MethodGet, "/library", nil)
		req.AddCookie(cookie)
		_, err := manager.Read(req)
		assert.Error(t, err)
	})

	t.Run("foreign signing key is rejected", func(t *testing.T) {
		t.Parallel()

		manager := newTestSessionManager(t)
		rec := httptest.NewRecorder()
		require.NoError(t, manager.Issue(rec, membership.Claims{Status: membership.StatusActive}))

		other, err := membership.NewSessionManager(membership.SessionConfig{
			SigningKey: "a-completely-different-key-here!",
		})
		require.NoError(t, err)

		_, err = other.Read(cookieRequest(t, rec))
		assert.Error(t, err)
	})

	t.Run("clear expires the cookie", func(t *testing.T) {
		t.Parallel()

		manager := newTestSessionManager(t)
		rec := httptest.NewRecorder()
		manager.Clear(rec)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Negative(t, cookies[0].MaxAge)
	})
}

func TestNewSessionManager(t *testing.T) {
	t.Parallel()

	_, err := membership.NewSessionManager(membership.SessionConfig{})
	assert.Error(t, err, "signing key is required")
}
