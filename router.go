package main

import (
	"net/http"

	"github.com/yugank-123/Mood2music/web"

	"github.com/cdfmlr/crud/router"
	"github.com/gin-gonic/gin"
)

// MakeRouter returns an engine with the page templates loaded
// and the health check mounted.
func MakeRouter() (*gin.Engine, error) {
	r := router.NewRouter()

	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r, nil
}

// RegisterRoutes mounts the page, the analyze API and the
// recommendation API.
//
// The catalog (/songs, /moods) and audio file routes are mounted by
// their own modules.
func (a *App) RegisterRoutes(r gin.IRouter) {
	// page
	r.GET("/", a.GetIndex)
	r.POST("/", a.PostIndex)

	// apis
	r.POST("/api/analyze", a.PostAnalyze)
	a.Recommender.RegisterRoutes(r)
}
