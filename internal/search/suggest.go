// Package search provides plant-name autocomplete backed by the public
// Google suggest endpoint.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const maxSuggestions = 10

// Client queries the suggest endpoint for plant-name completions.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

func NewClient(log *slog.Logger) *Client {
	return &Client{
		baseURL:    "https://suggestqueries.google.com/complete/search",
		httpClient: &http.Client{Timeout: 4 * time.Second},
		log:        log,
	}
}

// Suggest returns up to maxSuggestions completions for the query, with the
// query itself always first. Upstream failures degrade to just the query
// rather than an error; autocomplete is best-effort.
func (c *Client) Suggest(ctx context.Context, query string) []string {
	if query == "" {
		return nil
	}
	out := []string{query}

	u := fmt.Sprintf("%s?client=firefox&q=%s", c.baseURL, url.QueryEscape(query+" plant"))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return out
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug("suggest request failed", "error", err)
		return out
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		c.log.Debug("suggest request failed", "status", resp.StatusCode)
		return out
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return out
	}

	// Response shape is ["query", ["suggestion", ...], ...].
	var payload []json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil || len(payload) < 2 {
		c.log.Debug("suggest response malformed", "error", err)
		return out
	}
	var suggestions []string
	if err := json.Unmarshal(payload[1], &suggestions); err != nil {
		return out
	}

	seen := map[string]bool{query: true}
	for _, s := range suggestions {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}

// Close releases idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
