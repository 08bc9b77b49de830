package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkoss/manhunt/internal/api"
	"github.com/mkoss/manhunt/internal/dependencies/clock"
	"github.com/mkoss/manhunt/internal/dependencies/random"
	"github.com/mkoss/manhunt/internal/factory"
	"github.com/mkoss/manhunt/internal/testutil"
)

func newTestRouter(t *testing.T) (*factory.App, http.Handler) {
	t.Helper()

	app := factory.NewForTest(factory.Config{
		TickRateHz: 20,
	}, clock.New(), random.New(), testutil.NopLogger())

	return app, api.NewRouter(api.RouterConfig{
		Logger:      testutil.NopLogger(),
		Registry:    app.Registry,
		Phase:       app.Phase,
		Hub:         app.Hub,
		Broadcaster: app.Broadcaster,
		WSHandler:   app.WSHandler,
	})
}

func TestHealthz(t *testing.T) {
	_, router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestStatus(t *testing.T) {
	app, router := newTestRouter(t)

	_, err := app.Registry.Create("p1")
	require.NoError(t, err)
	_, err = app.Registry.Create("p2")
	require.NoError(t, err)
	require.NoError(t, app.Phase.StartRound())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var status api.StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, 2, status.Players)
	assert.Equal(t, 0, status.Clients)
	assert.True(t, status.StageStarted)
	assert.False(t, status.StageCompleted)
	assert.Equal(t, 50.0, status.TickIntervalMS)
}

func TestStatusRejectsNonGet(t *testing.T) {
	_, router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/status", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestWebSocketEndpointRejectsPlainGet(t *testing.T) {
	_, router := newTestRouter(t)

	// Without upgrade headers the handler fails the handshake and returns
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
