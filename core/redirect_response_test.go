package core_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lanternclub/membergate/core"
)

func TestRedirect(t *testing.T) {
	t.Parallel()

	t.Run("defaults to 303", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/handshake", nil)
		require.NoError(t, core.Redirect("/library").Render(rec, req))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/library", rec.Header().Get("Location"))
	})

	t.Run("custom code", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/old", nil)
		require.NoError(t, core.RedirectWithCode("/new", http.StatusMovedPermanently).Render(rec, req))

		assert.Equal(t, http.StatusMovedPermanently, rec.Code)
		assert.Equal(t, "/new", rec.Header().Get("Location"))
	})
}
