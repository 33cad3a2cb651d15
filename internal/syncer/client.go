// Package syncer pushes locally edited routines and training data to a
// backend server. The local SQLite store is the source of truth; pushes
// are deduplicated by content hash so repeated runs are cheap.
package syncer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client sends data to the backend over HTTP. Write endpoints require
// the X-API-Key header.
type Client struct {
	serverURL  string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new HTTP client for the backend.
func NewClient(serverURL, apiKey string) *Client {
	return &Client{
		serverURL: serverURL,
		apiKey:    apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// PutRoutine uploads one routine document. The server normalizes before
// storing, so the pushed doc may differ from what a later GET returns.
func (c *Client) PutRoutine(id, nombre string, doc json.RawMessage) error {
	body, err := json.Marshal(map[string]any{
		"nombre":  nombre,
		"routine": doc,
	})
	if err != nil {
		return fmt.Errorf("marshaling routine %s: %w", id, err)
	}
	return c.send(http.MethodPut, "/api/v1/routines/"+id, body)
}

// PostProgress uploads a progress snapshot in the flat wire form.
func (c *Client) PostProgress(progress json.RawMessage) error {
	return c.send(http.MethodPost, "/api/v1/progress", progress)
}

// PostLog uploads training log entries. The server skips entries it has
// already seen, so re-pushing the whole log is safe.
func (c *Client) PostLog(entries json.RawMessage) error {
	return c.send(http.MethodPost, "/api/v1/log", entries)
}

// send issues the request with up to 3 attempts and exponential backoff.
func (c *Client) send(method, path string, body []byte) error {
	var lastErr error
	for attempt := range 3 {
		if attempt > 0 {
			time.Sleep(time.Duration(1<<uint(attempt-1)) * time.Second)
		}

		req, err := http.NewRequest(method, c.serverURL+path, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("building request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-API-Key", c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		respBody, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusOK {
			return nil
		}
		lastErr = fmt.Errorf("%s %s failed (status %d): %s", method, path, resp.StatusCode, respBody)
	}

	return fmt.Errorf("after 3 attempts: %w", lastErr)
}
