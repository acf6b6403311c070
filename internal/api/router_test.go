package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t, newTestStore(t))

	rec := doJSON(t, router, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, "ok", resp.Status)
	require.GreaterOrEqual(t, resp.Uptime, 0.0)
	require.NotEmpty(t, resp.Hostname)
}

func TestUnmatchedRouteReturnsJSON404(t *testing.T) {
	router := newTestRouter(t, newTestStore(t))

	rec := doJSON(t, router, http.MethodGet, "/api/unknown", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"error":"Not found"}`, rec.Body.String())
}

func TestPreflightReturns204(t *testing.T) {
	router := newTestRouter(t, newTestStore(t))

	req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, rec.Body.String())
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestPanicBecomesJSON500(t *testing.T) {
	handler := recoverJSON(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/characters", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())
}
