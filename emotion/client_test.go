package emotion

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_Endpoint(t *testing.T) {
	tests := []struct {
		name   string
		server string
		model  string
		want   string
	}{
		{"defaults", "", "", "https://api-inference.huggingface.co/models/j-hartmann/emotion-english-distilroberta-base"},
		{"custom server no slash", "http://localhost:8000", "emo", "http://localhost:8000/emo"},
		{"custom server slash", "http://localhost:8000/models/", "org/emo", "http://localhost:8000/models/org/emo"},
		{"model leading slash", "http://localhost:8000/models/", "/org/emo", "http://localhost:8000/models/org/emo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClient(tt.server, tt.model, "", 0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Endpoint())
		})
	}
}

func TestClient_Classify(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantLabels []string
		wantStatus int
		wantErr    bool
	}{
		{
			name:       "nested pipeline output",
			status:     http.StatusOK,
			body:       `[[{"label":"joy","score":0.93},{"label":"neutral","score":0.04},{"label":"surprise","score":0.03}]]`,
			wantLabels: []string{"joy", "neutral", "surprise"},
		},
		{
			name:       "flat output",
			status:     http.StatusOK,
			body:       `[{"label":"sadness","score":0.8},{"label":"fear","score":0.2}]`,
			wantLabels: []string{"sadness", "fear"},
		},
		{
			name:       "model loading",
			status:     http.StatusServiceUnavailable,
			body:       `{"error":"Model is currently loading","estimated_time":20.0}`,
			wantStatus: http.StatusServiceUnavailable,
			wantErr:    true,
		},
		{
			name:       "server error plain body",
			status:     http.StatusInternalServerError,
			body:       `oops`,
			wantStatus: http.StatusInternalServerError,
			wantErr:    true,
		},
		{
			name:    "garbage",
			status:  http.StatusOK,
			body:    `{"not":"a list"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got classifyRequest
			var gotAuth string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost || r.URL.Path != "/models/test-model" {
					w.WriteHeader(http.StatusNotFound)
					return
				}
				gotAuth = r.Header.Get("Authorization")
				if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
					w.WriteHeader(http.StatusBadRequest)
					return
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c, err := NewClient(srv.URL+"/models/", "test-model", "hf_secret", time.Second)
			require.NoError(t, err)

			preds, err := c.Classify(context.Background(), "what a day")

			assert.Equal(t, "what a day", got.Inputs)
			assert.True(t, got.Options.WaitForModel)
			assert.Equal(t, "Bearer hf_secret", gotAuth)

			if tt.wantErr {
				require.Error(t, err)
				if tt.wantStatus != 0 {
					var se *StatusError
					require.True(t, errors.As(err, &se))
					assert.Equal(t, tt.wantStatus, se.StatusCode)
				}
				return
			}
			require.NoError(t, err)

			labels := make([]string, len(preds))
			for i, p := range preds {
				labels[i] = p.Label
			}
			assert.Equal(t, tt.wantLabels, labels)
		})
	}
}

func TestClient_StatusErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"Model is currently loading"}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "m", "", time.Second)
	require.NoError(t, err)

	_, err = c.Classify(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "Model is currently loading")
}

func TestClient_NoTokenNoAuthHeader(t *testing.T) {
	var hasAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth = r.Header["Authorization"]
		_, _ = w.Write([]byte(`[[{"label":"joy","score":1}]]`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "m", "", time.Second)
	require.NoError(t, err)

	_, err = c.Classify(context.Background(), "x")
	require.NoError(t, err)
	assert.False(t, hasAuth)
}

func TestClient_Warmup(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[[{"label":"neutral","score":0.9}]]`))
		}))
		defer srv.Close()

		c, err := NewClient(srv.URL, "m", "", time.Second)
		require.NoError(t, err)
		assert.NoError(t, c.Warmup(context.Background()))
	})

	t.Run("empty answer", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		}))
		defer srv.Close()

		c, err := NewClient(srv.URL, "m", "", time.Second)
		require.NoError(t, err)
		assert.ErrorIs(t, c.Warmup(context.Background()), ErrNoPrediction)
	})

	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := srv.URL
		srv.Close()

		c, err := NewClient(url, "m", "", time.Second)
		require.NoError(t, err)
		assert.Error(t, c.Warmup(context.Background()))
	})
}
