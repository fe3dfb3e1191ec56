package murecom

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yugank-123/Mood2music/model"
)

func TestGetMurecom(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec, err := NewRecommender(bigDataset(10, "joy", "sadness"), NewSeededRand(1))
	require.NoError(t, err)
	r := gin.New()
	rec.RegisterRoutes(r)

	tests := []struct {
		name      string
		query     string
		status    int
		wantSongs int
		wantMood  string
	}{
		{"default limit", "?Mood=joy", http.StatusOK, 5, "joy"},
		{"case insensitive", "?Mood=SADNESS&Limit=3", http.StatusOK, 3, "sadness"},
		{"fallback", "?Mood=fear", http.StatusOK, 5, ""},
		{"missing mood", "", http.StatusUnprocessableEntity, 0, ""},
		{"blank mood", "?Mood=%20%20", http.StatusUnprocessableEntity, 0, ""},
		{"limit out of range", "?Mood=joy&Limit=101", http.StatusUnprocessableEntity, 0, ""},
		{"limit not a number", "?Mood=joy&Limit=many", http.StatusBadRequest, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/murecom"+tt.query, nil))

			require.Equal(t, tt.status, w.Code, w.Body.String())
			if tt.status != http.StatusOK {
				return
			}

			var body struct{ Songs []model.Song }
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Len(t, body.Songs, tt.wantSongs)
			if tt.wantMood != "" {
				for _, s := range body.Songs {
					assert.Equal(t, tt.wantMood, s.Mood)
				}
			}
		})
	}
}
