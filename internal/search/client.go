package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Client is a client for the managed search index's HTTP query API.
type Client struct {
	Endpoint string
	APIKey   string
	IndexID  string
	client   *http.Client
}

// NewClient creates a new search index client. An empty endpoint,
// API key, or index ID leaves the client unconfigured; Query reports
// that through Configured rather than failing at construction.
func NewClient(endpoint, apiKey, indexID string) *Client {
	return &Client{
		Endpoint: strings.TrimRight(endpoint, "/"),
		APIKey:   apiKey,
		IndexID:  indexID,
		client:   http.DefaultClient,
	}
}

// Configured reports whether the client has credentials and an index to query.
func (c *Client) Configured() bool {
	return c.Endpoint != "" && c.APIKey != "" && c.IndexID != ""
}

// Query sends a search query and returns the ranked result items.
// The response is best-effort: missing fields decode to zero values.
func (c *Client) Query(ctx context.Context, queryText string, pageSize int, requestedAttributes []string) ([]ResultItem, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("search index is not configured")
	}

	payload := QueryInput{
		IndexID:                     c.IndexID,
		QueryText:                   queryText,
		PageSize:                    pageSize,
		RequestedDocumentAttributes: requestedAttributes,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query: %w", err)
	}

	url := fmt.Sprintf("%s/query", c.Endpoint)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.APIKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send query: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	var out QueryOutput
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode query response: %w", err)
	}

	return out.ResultItems, nil
}
