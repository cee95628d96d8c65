package core_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lanternclub/membergate/core"
)

func render(t *testing.T, resp core.Response) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, resp.Render(w, r))
	return w
}

func TestJSON(t *testing.T) {
	t.Parallel()

	w := render(t, core.JSON(map[string]string{"first_name": "Ada"}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

	var body core.JSONResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Nil(t, body.Error)
}

func TestJSONError(t *testing.T) {
	t.Parallel()

	t.Run("http error maps status", func(t *testing.T) {
		t.Parallel()

		w := render(t, core.JSONError(core.ErrUnauthorized))
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var body core.JSONResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.False(t, body.Success)
		require.NotNil(t, body.Error)
		assert.Equal(t, "unauthorized", body.Error.Code)
	})

	t.Run("wrapped http error maps status", func(t *testing.T) {
		t.Parallel()

		err := errors.Join(core.ErrServiceUnavailable, errors.New("store down"))
		w := render(t, core.JSONError(err))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("unknown error is 500", func(t *testing.T) {
		t.Parallel()

		w := render(t, core.JSONError(errors.New("boom")))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
