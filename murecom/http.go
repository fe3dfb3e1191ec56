package murecom

// this file implement a controller for recommending music by mood.

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type MurecomRequest struct {
	Mood  string
	Limit int
}

// RegisterRoutes mounts GET /murecom.
func (r *Recommender) RegisterRoutes(router gin.IRouter) {
	router.GET("/murecom", r.GetMurecom)
}

// GetMurecom handles: GET /murecom
//
// Query (Notice Capitalization):
//
//   - Mood: string, required, e.g. joy, sadness (case-insensitive)
//   - Limit: int, [1, 100], default 5
//
// Response:
//
//   - 200: OK: {songs: [{song1}, {song2}, ...]}
//   - 400: Bad Request: {error: "..."}
//   - 422: Unprocessable Entity: {error: "..."}
func (r *Recommender) GetMurecom(c *gin.Context) {
	req := new(MurecomRequest)
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := validateMurecomRequest(req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	songs := r.Recommend(req.Mood, req.Limit)

	logger.WithField("mood", req.Mood).
		WithField("limit", req.Limit).
		WithField("songs", len(songs)).
		Debug("GetMurecom")

	c.JSON(http.StatusOK, gin.H{"songs": songs})
}

func validateMurecomRequest(req *MurecomRequest) error {
	req.Mood = strings.TrimSpace(req.Mood)
	if req.Mood == "" {
		return errors.New("query Mood is required")
	}
	if req.Limit == 0 { // default
		req.Limit = DefaultLimit
	} else if req.Limit < 1 || req.Limit > 100 {
		return errors.New("query Limit should be in [1, 100]")
	}
	return nil
}
