package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lanternclub/membergate/pkg/cookie"
)

func TestManagerSet(t *testing.T) {
	t.Parallel()

	t.Run("defaults applied", func(t *testing.T) {
		t.Parallel()

		m := cookie.New()
		w := httptest.NewRecorder()
		m.Set(w, "member_session", "tok")

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		c := cookies[0]
		assert.Equal(t, "member_session", c.Name)
		assert.Equal(t, "tok", c.Value)
		assert.Equal(t, "/", c.Path)
		assert.True(t, c.HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
		assert.False(t, c.Secure)
	})

	t.Run("per-call options override defaults", func(t *testing.T) {
		t.Parallel()

		m := cookie.New(cookie.WithSecure(true))
		w := httptest.NewRecorder()
		m.Set(w, "member_session", "tok",
			cookie.WithMaxAge(3600),
			cookie.WithPath("/app"),
		)

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		c := cookies[0]
		assert.Equal(t, 3600, c.MaxAge)
		assert.Equal(t, "/app", c.Path)
		assert.True(t, c.Secure)
	})
}

func TestManagerGet(t *testing.T) {
	t.Parallel()

	m := cookie.New()

	t.Run("returns value", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "member_session", Value: "tok"})

		got, err := m.Get(r, "member_session")
		require.NoError(t, err)
		assert.Equal(t, "tok", got)
	})

	t.Run("missing cookie", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		_, err := m.Get(r, "member_session")
		require.ErrorIs(t, err, cookie.ErrCookieNotFound)
	})
}

func TestManagerDelete(t *testing.T) {
	t.Parallel()

	m := cookie.New(cookie.WithSecure(true))
	w := httptest.NewRecorder()
	m.Delete(w, "member_session")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, "member_session", c.Name)
	assert.Empty(t, c.Value)
	assert.Equal(t, -1, c.MaxAge)
	assert.True(t, c.Secure, "delete must match set attributes or browsers keep the original cookie")
}
