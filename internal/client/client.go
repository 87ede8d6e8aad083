// Package client provides a REST client for the Waypoint server, used by
// the CLI.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/gorilla/websocket"

	"github.com/waypointhq/waypoint/internal/models"
)

// ErrNotFound indicates the server has no job with the requested id.
var ErrNotFound = errors.New("job not found")

// Client talks to the Waypoint HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client. If endpoint is empty, WAYPOINT_SERVER_URL is used,
// then a localhost default.
func New(endpoint string) *Client {
	if endpoint == "" {
		endpoint = os.Getenv("WAYPOINT_SERVER_URL")
	}
	if endpoint == "" {
		endpoint = "http://localhost:8000"
	}

	timeout := 30 * time.Second
	if t := os.Getenv("WAYPOINT_CLIENT_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			timeout = d
		}
	}

	return &Client{
		baseURL: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Accepted is the server's response to a submitted analysis.
type Accepted struct {
	JobID    string           `json:"job_id"`
	Status   models.JobStatus `json:"status"`
	Progress int              `json:"progress"`
}

// apiError is the server's JSON error envelope.
type apiError struct {
	Error string `json:"error"`
}

// Analyze submits an analysis request and returns the accepted job.
func (c *Client) Analyze(ctx context.Context, req models.AnalyzeRequest) (*Accepted, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/analyze", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		return nil, decodeError(resp)
	}

	var accepted Accepted
	if err := json.NewDecoder(resp.Body).Decode(&accepted); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &accepted, nil
}

// GetJob fetches the current state of a job.
func (c *Client) GetJob(ctx context.Context, jobID string) (*models.Job, error) {
	httpReq, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/results/"+url.PathEscape(jobID), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var job models.Job
	if err := json.NewDecoder(resp.Body).Decode(&job); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &job, nil
}

// ProgressEvent is one frame of the server's progress stream.
type ProgressEvent struct {
	JobID    string           `json:"job_id"`
	Status   models.JobStatus `json:"status"`
	Progress int              `json:"progress"`
	Error    *string          `json:"error,omitempty"`
}

// WatchJob subscribes to the progress stream for a job. Events are sent on
// the returned channel, which is closed when the job reaches a terminal
// state or the stream ends.
func (c *Client) WatchJob(ctx context.Context, jobID string) (<-chan ProgressEvent, error) {
	wsURL, err := c.websocketURL("/jobs/" + url.PathEscape(jobID) + "/events")
	if err != nil {
		return nil, err
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("dial progress stream: %w", err)
	}

	events := make(chan ProgressEvent)
	go func() {
		defer close(events)
		defer conn.Close()
		for {
			var event ProgressEvent
			if err := conn.ReadJSON(&event); err != nil {
				return
			}
			select {
			case events <- event:
			case <-ctx.Done():
				return
			}
		}
	}()

	return events, nil
}

// websocketURL converts the base HTTP URL into its ws:// equivalent.
func (c *Client) websocketURL(path string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse server url: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}
	u.Path = path
	return u.String(), nil
}

func decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error != "" {
		return fmt.Errorf("server error (%s): %s", resp.Status, apiErr.Error)
	}
	return fmt.Errorf("server error (%s): %s", resp.Status, string(body))
}
