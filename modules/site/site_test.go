package site_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lanternclub/membergate/content"
	"github.com/lanternclub/membergate/membership"
	"github.com/lanternclub/membergate/modules/site"
)

func newSiteFixture(t *testing.T) (http.Handler, *membership.SessionManager) {
	t.Helper()

	sessions, err := membership.NewSessionManager(membership.SessionConfig{
		SigningKey: "test-signing-key-32-bytes-long!!",
	})
	require.NoError(t, err)

	items := content.NewMemoryRepository(content.Item{
		Slug:  "essay-1",
		Title: "On Reading Slowly",
		Body:  "<p>Take your time.</p>",
	})

	svc := site.NewService(membership.NewMembers(sessions), items, nil)
	return site.Router(svc), sessions
}

func TestSitePages(t *testing.T) {
	t.Parallel()

	t.Run("home page renders", func(t *testing.T) {
		t.Parallel()

		handler, _ := newSiteFixture(t)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "The Lantern Club")
	})

	t.Run("library item renders with a member greeting", func(t *testing.T) {
		t.Parallel()

		handler, sessions := newSiteFixture(t)

		issued := httptest.NewRecorder()
		require.NoError(t, sessions.Issue(issued, membership.Claims{
			FirstName: "Jane", Status: membership.StatusActive,
		}))

		req := httptest.NewRequest(http.MethodGet, "/library/essay-1", nil)
		for _, c := range issued.Result().Cookies() {
			req.AddCookie(c)
		}

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "On Reading Slowly")
		assert.Contains(t, rec.Body.String(), "Welcome back, Jane.")
	})

	t.Run("unknown library item is a 404", func(t *testing.T) {
		t.Parallel()

		handler, _ := newSiteFixture(t)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/library/missing", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
