package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/puffin/internal/adapters/memory"
	"github.com/aretw0/puffin/pkg/domain"
	"github.com/aretw0/puffin/pkg/registry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestGetHealth(t *testing.T) {
	handler := NewHandler(memory.New(), registry.Default())

	rr := serve(t, handler, "/health")
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestGetInfo(t *testing.T) {
	handler := NewHandler(memory.New(), registry.Default(), WithVersion("1.2.3"))

	rr := serve(t, handler, "/info")
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "puffin", resp["app"])
	assert.Equal(t, "1.2.3", resp["version"])
}

func TestGetRegistry(t *testing.T) {
	handler := NewHandler(memory.New(), registry.Default())

	rr := serve(t, handler, "/registry")
	require.Equal(t, http.StatusOK, rr.Code)

	var views []StateView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &views))
	require.Len(t, views, 5)
	assert.Equal(t, domain.StateGamePaused, views[4].State)
	assert.Equal(t, []domain.SceneType{domain.SceneGame, domain.SceneGamePaused}, views[4].Scenes)
}

func TestGetState(t *testing.T) {
	store := memory.New()
	handler := NewHandler(store, registry.Default(), WithDefaultRun("main"))

	rr := serve(t, handler, "/state")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	tr := domain.MustSceneTransition(domain.StateGame, domain.StateGamePaused, domain.SpeedFast)
	state := domain.NewSceneState(domain.StateTransitioning, []domain.SceneType{domain.SceneGame, domain.SceneGamePaused})
	state.Transition = &tr
	require.NoError(t, store.Save(context.Background(), "main", &domain.Snapshot{Tick: 12, State: state}))
	require.NoError(t, store.Save(context.Background(), "other", &domain.Snapshot{Tick: 1, State: state}))

	rr = serve(t, handler, "/state")
	require.Equal(t, http.StatusOK, rr.Code)
	var snap domain.Snapshot
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &snap))
	assert.Equal(t, uint64(12), snap.Tick)
	require.NotNil(t, snap.State.Transition)
	assert.Equal(t, tr, *snap.State.Transition)

	rr = serve(t, handler, "/runs/other")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = serve(t, handler, "/runs")
	var runs []string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &runs))
	assert.Equal(t, []string{"main", "other"}, runs)
}

func TestGetMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "puffin_test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Inc()

	rr := serve(t, NewHandler(memory.New(), registry.Default()), "/metrics")
	assert.Equal(t, http.StatusNotFound, rr.Code, "metrics are opt-in")

	rr = serve(t, NewHandler(memory.New(), registry.Default(), WithGatherer(reg)), "/metrics")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "puffin_test_total 1")
}
