package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"microgrid-env/internal/api/models"
	"microgrid-env/internal/episode"
	"microgrid-env/internal/series"
)

// EpisodeHandler runs whole episodes in a single request.
type EpisodeHandler struct{}

func NewEpisodeHandler() *EpisodeHandler {
	return &EpisodeHandler{}
}

// RunEpisode handles POST /api/v1/episodes.
func (h *EpisodeHandler) RunEpisode(c *gin.Context) {
	var req models.RunEpisodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "BAD_REQUEST", "message": err.Error()}})
		return
	}

	mode, err := series.ParseMode(req.Mode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "BAD_REQUEST", "message": err.Error()}})
		return
	}
	pol, err := episode.BuildPolicy(req.Policy.Name, req.Policy.Params)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "BAD_REQUEST", "message": err.Error()}})
		return
	}

	e, err := buildEnvironment(req.Environment, req.Data)
	if err != nil {
		writeEnvError(c, err)
		return
	}

	res, err := episode.Run(e, mode, pol, req.Steps)
	if err != nil {
		writeEnvError(c, err)
		return
	}

	id := uuid.NewString()
	log.Printf("[api] episode %s: %s/%s, %d steps, reward=%.4f",
		id, res.Mode, res.Policy, len(res.Trajectory), res.TotalReward)

	resp := models.EpisodeResponse{
		ID:      id,
		Status:  "completed",
		Summary: models.SummaryOf(res),
	}
	if req.IncludeTrajectory {
		resp.Trajectory = models.TrajectoryRows(res)
	}
	c.JSON(http.StatusOK, resp)
}
