package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	store := NewSessionStore(time.Minute)
	sessions := NewSessionHandler(store)
	episodes := NewEpisodeHandler()

	api := router.Group("/api/v1")
	api.POST("/sessions", sessions.CreateSession)
	api.POST("/sessions/:id/reset", sessions.ResetSession)
	api.POST("/sessions/:id/step", sessions.StepSession)
	api.GET("/sessions/:id/observation", sessions.GetObservation)
	api.DELETE("/sessions/:id", sessions.DeleteSession)
	api.POST("/episodes", episodes.RunEpisode)

	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func TestSessionLifecycle(t *testing.T) {
	router := testRouter()

	// Create a session over synthetic data.
	w, created := doJSON(t, router, http.MethodPost, "/api/v1/sessions", map[string]any{
		"environment": map[string]any{"seasonal_signal": true, "production_forecast": true},
		"data":        map[string]any{"synthetic": true, "synthetic_length": 500, "seed": 3},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "full", created["layout"])
	assert.Equal(t, float64(3), created["n_actions"])

	base := fmt.Sprintf("/api/v1/sessions/%s", id)

	// Reset on the train split.
	w, reset := doJSON(t, router, http.MethodPost, base+"/reset", map[string]any{"mode": "train"})
	require.Equal(t, http.StatusOK, w.Code)
	obs := reset["observation"].(map[string]any)
	assert.Equal(t, 0.0, obs["storage_level"], "reset observation reports a zero storage level")
	assert.Equal(t, float64(500-48), reset["episode_length"])

	// A hold step.
	w, step := doJSON(t, router, http.MethodPost, base+"/step", map[string]any{"action": 1})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), step["cursor"])
	assert.Equal(t, false, step["done"])

	// Observation matches the step's observation.
	w, observed := doJSON(t, router, http.MethodGet, base+"/observation", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, step["observation"], observed["observation"])

	// Delete, then the session is gone.
	w, _ = doJSON(t, router, http.MethodDelete, base, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	w, _ = doJSON(t, router, http.MethodGet, base+"/observation", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionErrors(t *testing.T) {
	router := testRouter()

	t.Run("unsupported feature combination", func(t *testing.T) {
		w, body := doJSON(t, router, http.MethodPost, "/api/v1/sessions", map[string]any{
			"environment": map[string]any{"production_forecast": true},
			"data":        map[string]any{"synthetic": true, "synthetic_length": 500},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.NotNil(t, body["error"])
	})

	t.Run("unknown session", func(t *testing.T) {
		w, _ := doJSON(t, router, http.MethodPost, "/api/v1/sessions/nope/step", map[string]any{"action": 1})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("step before reset", func(t *testing.T) {
		w, created := doJSON(t, router, http.MethodPost, "/api/v1/sessions", map[string]any{
			"data": map[string]any{"synthetic": true, "synthetic_length": 500},
		})
		require.Equal(t, http.StatusCreated, w.Code)
		id := created["id"].(string)

		w, body := doJSON(t, router, http.MethodPost, "/api/v1/sessions/"+id+"/step", map[string]any{"action": 1})
		assert.Equal(t, http.StatusConflict, w.Code)
		errObj := body["error"].(map[string]any)
		assert.Equal(t, "NO_EPISODE", errObj["code"])
	})

	t.Run("invalid action", func(t *testing.T) {
		w, created := doJSON(t, router, http.MethodPost, "/api/v1/sessions", map[string]any{
			"data": map[string]any{"synthetic": true, "synthetic_length": 500},
		})
		require.Equal(t, http.StatusCreated, w.Code)
		id := created["id"].(string)

		w, _ = doJSON(t, router, http.MethodPost, "/api/v1/sessions/"+id+"/reset", map[string]any{"mode": "train"})
		require.Equal(t, http.StatusOK, w.Code)

		w, body := doJSON(t, router, http.MethodPost, "/api/v1/sessions/"+id+"/step", map[string]any{"action": 5})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		errObj := body["error"].(map[string]any)
		assert.Equal(t, "INVALID_ACTION", errObj["code"])
	})

	t.Run("bad mode", func(t *testing.T) {
		w, created := doJSON(t, router, http.MethodPost, "/api/v1/sessions", map[string]any{
			"data": map[string]any{"synthetic": true, "synthetic_length": 500},
		})
		require.Equal(t, http.StatusCreated, w.Code)
		id := created["id"].(string)

		w, _ = doJSON(t, router, http.MethodPost, "/api/v1/sessions/"+id+"/reset", map[string]any{"mode": "prod"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRunEpisodeEndpoint(t *testing.T) {
	router := testRouter()

	w, body := doJSON(t, router, http.MethodPost, "/api/v1/episodes", map[string]any{
		"data":   map[string]any{"synthetic": true, "synthetic_length": 300, "seed": 9},
		"mode":   "test",
		"policy": map[string]any{"name": "schedule"},
		"steps":  48,
		"include_trajectory": true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	summary := body["summary"].(map[string]any)
	assert.Equal(t, "test", summary["mode"])
	assert.Equal(t, "schedule", summary["policy"])
	assert.Equal(t, float64(48), summary["steps"])

	trajectory := body["trajectory"].([]any)
	assert.Len(t, trajectory, 48)

	t.Run("unknown policy", func(t *testing.T) {
		w, _ := doJSON(t, router, http.MethodPost, "/api/v1/episodes", map[string]any{
			"data":   map[string]any{"synthetic": true, "synthetic_length": 300},
			"mode":   "train",
			"policy": map[string]any{"name": "oracle"},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
