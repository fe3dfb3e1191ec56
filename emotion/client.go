// Package emotion detects the mood of a piece of text.
//
// A Client talks to a text-classification model served over HTTP
// (the HuggingFace inference API or anything speaking its format),
// and ResolveMood boils the model output down to a single mood label.
package emotion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cdfmlr/crud/log"
	"github.com/yugank-123/Mood2music/model"
)

var logger = log.ZoneLogger("mood2music/emotion")

const (
	DefaultServer = "https://api-inference.huggingface.co/models/"
	DefaultModel  = "j-hartmann/emotion-english-distilroberta-base"

	defaultTimeout = 30 * time.Second

	// warmupText is sent by Warmup to make sure the model answers.
	warmupText = "I am feeling fine today."
)

// Classifier maps text to a set of (label, score) pairs.
type Classifier interface {
	Classify(ctx context.Context, text string) ([]model.Prediction, error)
}

// Client is an API client for a text-classification model server.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

// NewClient returns a Client posting to {server}/{modelName}.
// Empty server or modelName fall back to DefaultServer and DefaultModel.
// token is sent as a bearer token if not empty.
func NewClient(server, modelName, token string, timeout time.Duration) (*Client, error) {
	if server == "" {
		server = DefaultServer
	}
	if modelName == "" {
		modelName = DefaultModel
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	// model names may carry a leading slash: join by hand
	endpoint, err := url.JoinPath(server)
	if err != nil {
		return nil, fmt.Errorf("emotion: bad server url %q: %w", server, err)
	}
	endpoint = strings.TrimRight(endpoint, "/") + "/" + strings.TrimLeft(modelName, "/")

	return &Client{
		endpoint: endpoint,
		token:    token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Endpoint returns the URL the client posts to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

type classifyRequest struct {
	Inputs  string          `json:"inputs"`
	Options classifyOptions `json:"options"`
}

type classifyOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

type errorResponse struct {
	Error         string  `json:"error"`
	EstimatedTime float64 `json:"estimated_time,omitempty"`
}

// Classify sends text to the model and returns the predictions in the
// order the server sent them.
func (c *Client) Classify(ctx context.Context, text string) ([]model.Prediction, error) {
	// build request
	req, err := c.classifyRequest(ctx, text)
	if err != nil {
		return nil, err
	}

	// send request
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("emotion: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("emotion: read response: %w", err)
	}

	// check response
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, statusError(resp.StatusCode, body)
	}

	// parse response
	preds, err := parsePredictions(body)
	if err != nil {
		return nil, err
	}

	logger.WithField("endpoint", c.endpoint).
		WithField("predictions", len(preds)).
		Debug("Classify: success")

	return preds, nil
}

// Warmup sends a probe text to the model, so that a missing or broken
// model shows up at startup instead of on the first user request.
func (c *Client) Warmup(ctx context.Context) error {
	preds, err := c.Classify(ctx, warmupText)
	if err != nil {
		return fmt.Errorf("emotion: warmup: %w", err)
	}
	if len(preds) == 0 {
		return fmt.Errorf("emotion: warmup: %w", ErrNoPrediction)
	}

	logger.WithField("endpoint", c.endpoint).
		WithField("labels", len(preds)).
		Info("Warmup: model is ready")
	return nil
}

// POST {endpoint} with {"inputs": text}
func (c *Client) classifyRequest(ctx context.Context, text string) (*http.Request, error) {
	payload, err := json.Marshal(classifyRequest{
		Inputs:  text,
		Options: classifyOptions{WaitForModel: true},
	})
	if err != nil {
		return nil, fmt.Errorf("emotion: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("emotion: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	return req, nil
}

// parsePredictions accepts both [[{label, score}, ...]] (one list per
// input, what the inference API returns) and a flat [{label, score}, ...].
func parsePredictions(body []byte) ([]model.Prediction, error) {
	var nested [][]model.Prediction
	if err := json.Unmarshal(body, &nested); err == nil {
		if len(nested) == 0 {
			return nil, ErrNoPrediction
		}
		return nested[0], nil
	}

	var flat []model.Prediction
	if err := json.Unmarshal(body, &flat); err != nil {
		return nil, fmt.Errorf("emotion: decode response: %w", err)
	}
	return flat, nil
}

// StatusError is returned by Classify when the server answers non-2xx.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("emotion: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("emotion: unexpected status %d: %s", e.StatusCode, e.Message)
}

func statusError(code int, body []byte) error {
	var er errorResponse
	msg := strings.TrimSpace(string(body))
	if err := json.Unmarshal(body, &er); err == nil && er.Error != "" {
		msg = er.Error
	}
	return &StatusError{StatusCode: code, Message: msg}
}
