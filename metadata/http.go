package metadata

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

func registerRoutes(r gin.IRouter) {
	r.GET("/songs", GetSongs)
	r.GET("/moods", GetMoods)
}

type GetSongsRequest struct {
	Mood   string
	Limit  int
	Offset int
}

// GetSongs handles: GET /songs
//
// Query (Notice Capitalization):
//
//   - Mood: string, optional, case-insensitive
//   - Limit: int, [1, 100], default 20
//   - Offset: int, >= 0
//
// Response:
//
//   - 200: OK: {songs: [{song1}, {song2}, ...]}
//   - 400: Bad Request: {error: "..."}
//   - 500: Internal Server Error: {error: "..."}
func GetSongs(c *gin.Context) {
	req := new(GetSongsRequest)
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validateGetSongsRequest(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	songs, err := ListSongs(c, req.Mood, req.Limit, req.Offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"songs": songs})
}

func validateGetSongsRequest(req *GetSongsRequest) error {
	if req.Limit == 0 { // default
		req.Limit = 20
	} else if req.Limit < 1 || req.Limit > 100 {
		return errors.New("query Limit should be in [1, 100]")
	}
	if req.Offset < 0 {
		return errors.New("query Offset should be >= 0")
	}
	return nil
}

// GetMoods handles: GET /moods
//
// Response:
//
//   - 200: OK: {moods: [{Mood: "joy", Songs: 12}, ...]}
//   - 500: Internal Server Error: {error: "..."}
func GetMoods(c *gin.Context) {
	moods, err := Moods(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"moods": moods})
}
