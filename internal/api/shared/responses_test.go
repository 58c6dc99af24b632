package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/todos", nil)
	w := httptest.NewRecorder()

	RespondWithJSON(w, r, http.StatusCreated, map[string]string{"title": "Trip"})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"title":"Trip"}`, w.Body.String())
}

func TestRespondWithError(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/todos", nil)
	w := httptest.NewRecorder()

	RespondWithError(w, r, http.StatusUnauthorized, "API Key is required")

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"API Key is required"}`, w.Body.String())
}

func TestRespondWithErrorAndLog_StackOnlyInDevelopment(t *testing.T) {
	t.Cleanup(func() { SetIncludeStack(false) })

	cause := errors.New("pq: connection refused")

	t.Run("production omits the stack", func(t *testing.T) {
		SetIncludeStack(false)
		r := httptest.NewRequest(http.MethodGet, "/todos", nil)
		w := httptest.NewRecorder()

		RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "An unexpected error occurred", cause)

		require.Equal(t, http.StatusInternalServerError, w.Code)
		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "An unexpected error occurred", resp.Message)
		assert.Empty(t, resp.Stack)
	})

	t.Run("development includes the stack on 500", func(t *testing.T) {
		SetIncludeStack(true)
		r := httptest.NewRequest(http.MethodGet, "/todos", nil)
		w := httptest.NewRecorder()

		RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "An unexpected error occurred", cause)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Stack)
	})

	t.Run("development still omits the stack on 4xx", func(t *testing.T) {
		SetIncludeStack(true)
		r := httptest.NewRequest(http.MethodGet, "/todos", nil)
		w := httptest.NewRecorder()

		RespondWithErrorAndLog(w, r, http.StatusNotFound, "Todo list not found", cause)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Empty(t, resp.Stack)
	})
}
