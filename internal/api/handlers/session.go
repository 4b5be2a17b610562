package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"microgrid-env/internal/api/models"
	"microgrid-env/internal/env"
	"microgrid-env/internal/series"
)

// SessionHandler exposes the environment's driver interface
// (reset/step/observe) over HTTP, one environment per session.
type SessionHandler struct {
	store *SessionStore
}

func NewSessionHandler(store *SessionStore) *SessionHandler {
	return &SessionHandler{store: store}
}

// CreateSession handles POST /api/v1/sessions.
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req models.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "BAD_REQUEST", "message": err.Error()}})
		return
	}

	e, err := buildEnvironment(req.Environment, req.Data)
	if err != nil {
		writeEnvError(c, err)
		return
	}

	s := &Session{
		ID:        uuid.NewString(),
		Env:       e,
		CreatedAt: time.Now(),
	}
	h.store.Put(s)
	log.Printf("[api] session %s created (layout=%s, %d open)", s.ID, e.Layout(), h.store.Len())

	c.JSON(http.StatusCreated, models.SessionResponse{
		ID:              s.ID,
		Layout:          e.Layout().String(),
		NActions:        e.NActions(),
		InputDimensions: inputDims(e),
		CreatedAt:       s.CreatedAt,
	})
}

// ResetSession handles POST /api/v1/sessions/:id/reset.
func (h *SessionHandler) ResetSession(c *gin.Context) {
	s, ok := h.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "unknown session"}})
		return
	}

	var req models.ResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "BAD_REQUEST", "message": err.Error()}})
		return
	}
	mode, err := series.ParseMode(req.Mode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "BAD_REQUEST", "message": err.Error()}})
		return
	}

	var (
		obs    env.Observation
		length int
	)
	err = s.Do(func(e *env.Environment) error {
		var err error
		obs, err = e.Reset(mode)
		length = e.EpisodeLength()
		return err
	})
	if err != nil {
		writeEnvError(c, err)
		return
	}
	s.Mode = mode.String()

	c.JSON(http.StatusOK, models.ResetResponse{
		Mode:          mode.String(),
		Observation:   obs,
		EpisodeLength: length,
	})
}

// StepSession handles POST /api/v1/sessions/:id/step.
func (h *SessionHandler) StepSession(c *gin.Context) {
	s, ok := h.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "unknown session"}})
		return
	}

	var req models.StepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "BAD_REQUEST", "message": err.Error()}})
		return
	}

	var resp models.StepResponse
	err := s.Do(func(e *env.Environment) error {
		reward, err := e.Step(env.Action(req.Action))
		if err != nil {
			return err
		}
		resp = models.StepResponse{
			Reward:      reward,
			Observation: e.Observe(),
			Cursor:      e.Cursor(),
			Done:        e.Cursor() > e.EpisodeLength(),
		}
		return nil
	})
	if err != nil {
		writeEnvError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetObservation handles GET /api/v1/sessions/:id/observation.
func (h *SessionHandler) GetObservation(c *gin.Context) {
	s, ok := h.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "unknown session"}})
		return
	}

	var resp models.ObservationResponse
	_ = s.Do(func(e *env.Environment) error {
		resp = models.ObservationResponse{
			Observation: e.Observe(),
			Cursor:      e.Cursor(),
		}
		return nil
	})

	c.JSON(http.StatusOK, resp)
}

// DeleteSession handles DELETE /api/v1/sessions/:id.
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	if !h.store.Delete(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "unknown session"}})
		return
	}
	c.Status(http.StatusNoContent)
}
