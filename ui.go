package main

import (
	"net/http"
	"sort"

	"github.com/yugank-123/Mood2music/model"

	"github.com/gin-gonic/gin"
)

// indexPage is the data of index.html.
type indexPage struct {
	Text    string
	Mood    string
	Error   string
	Columns []string
	Rows    [][]string
}

// GetIndex handles: GET /
func (a *App) GetIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", indexPage{})
}

// PostIndex handles: POST /
//
// Body: form: text=...
//
// Renders the detected mood and a table of recommended songs,
// or the error inline if the emotion model failed.
func (a *App) PostIndex(c *gin.Context) {
	page := indexPage{Text: c.PostForm("text")}

	result, err := a.Analyze(c.Request.Context(), page.Text)
	if err != nil {
		logger.WithError(err).Warn("PostIndex: Analyze failed")
		page.Error = "Could not analyze your mood: " + err.Error()
		c.HTML(http.StatusOK, "index.html", page)
		return
	}

	page.Mood = result.Mood
	page.Columns, page.Rows = songTable(result.Songs)
	c.HTML(http.StatusOK, "index.html", page)
}

// songTable lays songs out as rows: the fixed columns first,
// then every Extra key, sorted.
func songTable(songs []model.Song) ([]string, [][]string) {
	columns := []string{"Title", "Artist", "Album", "Mood"}

	seen := map[string]bool{}
	var extras []string
	for _, s := range songs {
		for k := range s.Extra {
			if !seen[k] {
				seen[k] = true
				extras = append(extras, k)
			}
		}
	}
	sort.Strings(extras)
	columns = append(columns, extras...)

	rows := make([][]string, 0, len(songs))
	for _, s := range songs {
		row := []string{s.Title, s.Artist, s.Album, s.Mood}
		for _, k := range extras {
			row = append(row, s.Extra[k])
		}
		rows = append(rows, row)
	}
	return columns, rows
}
