package main

import (
	"net/http"

	"github.com/cdfmlr/crud/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var logger = log.ZoneLogger("mood2music")

func newAnalysisID() string {
	return uuid.NewString()
}

type AnalyzeRequest struct {
	Text string `json:"text"`
}

// PostAnalyze handles: POST /api/analyze
//
// Body: application/json: {"text": "I feel great today"}
//
// Response:
//
//   - 200: OK: {id: "...", mood: "joy", songs: [{song1}, ...]}
//   - 400: Bad Request: {error: "..."}
//   - 502: Bad Gateway: {error: "..."}: the emotion model failed
func (a *App) PostAnalyze(c *gin.Context) {
	req := new(AnalyzeRequest)
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := a.Analyze(c.Request.Context(), req.Text)
	if err != nil {
		logger.WithContext(c).WithError(err).Warn("PostAnalyze: Analyze failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	logger.WithField("id", result.ID).
		WithField("mood", result.Mood).
		WithField("songs", len(result.Songs)).
		Info("PostAnalyze")

	c.JSON(http.StatusOK, result)
}
