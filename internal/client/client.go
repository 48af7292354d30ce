// Package client talks to a remote snakeboard leaderboard. Client satisfies
// storage.Leaderboard so the terminal game can use a server or a local
// database interchangeably.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vovakirdan/snakeboard/internal/storage"
)

const scoresPath = "/api/scores"

// Client is an HTTP leaderboard client.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the server at baseURL, e.g. http://localhost:8080.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// TopScores fetches the leaderboard. The server always returns its top 10;
// smaller limits are applied client-side.
func (c *Client) TopScores(ctx context.Context, limit int) ([]storage.ScoreRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+scoresPath, nil)
	if err != nil {
		return nil, fmt.Errorf("client: cannot build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("client: cannot fetch scores: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("client: unexpected status %d", resp.StatusCode)
	}

	records := []storage.ScoreRecord{}
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("client: cannot decode scores: %w", err)
	}
	if records == nil {
		records = []storage.ScoreRecord{}
	}
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// SubmitScore posts a score. A 400 reply comes back as a
// *storage.ValidationError carrying the server's message.
func (c *Client) SubmitScore(ctx context.Context, username string, score int) (storage.ScoreRecord, error) {
	body, err := json.Marshal(map[string]any{"username": username, "score": score})
	if err != nil {
		return storage.ScoreRecord{}, fmt.Errorf("client: cannot encode score: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+scoresPath, bytes.NewReader(body))
	if err != nil {
		return storage.ScoreRecord{}, fmt.Errorf("client: cannot build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return storage.ScoreRecord{}, fmt.Errorf("client: cannot submit score: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated:
		var record storage.ScoreRecord
		if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
			return storage.ScoreRecord{}, fmt.Errorf("client: cannot decode record: %w", err)
		}
		return record, nil
	case http.StatusBadRequest:
		return storage.ScoreRecord{}, &storage.ValidationError{Message: readMessage(resp.Body)}
	default:
		return storage.ScoreRecord{}, fmt.Errorf("client: server returned %d: %s", resp.StatusCode, readMessage(resp.Body))
	}
}

// Close is a no-op; the underlying transport is shared.
func (c *Client) Close() error {
	return nil
}

func readMessage(r io.Reader) string {
	var payload struct {
		Message string `json:"message"`
	}
	data, _ := io.ReadAll(io.LimitReader(r, 4<<10))
	if err := json.Unmarshal(data, &payload); err != nil || payload.Message == "" {
		return strings.TrimSpace(string(data))
	}
	return payload.Message
}

var _ storage.Leaderboard = (*Client)(nil)
