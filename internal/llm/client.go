package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Client is a client for a Gemini-style generateContent API.
//
// Generation is retried across an ordered list of model identifiers:
// each attempt gets its own bounded timeout, and the first model that
// answers wins. This is sequential retry-with-fallback, not concurrent
// racing.
type Client struct {
	BaseURL        string
	APIKey         string
	Models         []string
	attemptTimeout time.Duration
	client         *http.Client
	logger         *slog.Logger
}

// NewClient creates a new LLM client. models is the ordered fallback
// chain; attemptTimeout bounds each model attempt so one unresponsive
// identifier cannot stall the chain.
func NewClient(baseURL, apiKey string, models []string, attemptTimeout time.Duration) *Client {
	return &Client{
		BaseURL:        strings.TrimRight(baseURL, "/"),
		APIKey:         apiKey,
		Models:         models,
		attemptTimeout: attemptTimeout,
		client:         http.DefaultClient,
		logger:         slog.Default(),
	}
}

// generateRequest is the generateContent request payload.
type generateRequest struct {
	Contents []contentBlock `json:"contents"`
}

type contentBlock struct {
	Parts []contentPart `json:"parts"`
}

type contentPart struct {
	Text string `json:"text"`
}

// generateResponse is the generateContent response payload.
type generateResponse struct {
	Candidates []candidate `json:"candidates"`
	Error      *apiError   `json:"error,omitempty"`
}

type candidate struct {
	Content *contentBlock `json:"content"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Generate sends the prompt to each configured model in order and
// returns the first successful completion. It fails only after every
// model identifier has been tried.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.APIKey == "" {
		return "", fmt.Errorf("LLM API key is not set")
	}
	if len(c.Models) == 0 {
		return "", fmt.Errorf("no LLM models configured")
	}

	var lastErr error
	for _, model := range c.Models {
		text, err := c.generateOnce(ctx, model, prompt)
		if err == nil {
			return text, nil
		}
		if ctx.Err() != nil {
			// The caller's context is gone; further attempts would all
			// fail the same way.
			return "", ctx.Err()
		}
		c.logger.WarnContext(ctx, "model attempt failed", "model", model, "error", err)
		lastErr = fmt.Errorf("model %s: %w", model, err)
	}

	return "", fmt.Errorf("all %d configured models failed: %w", len(c.Models), lastErr)
}

// generateOnce sends a single generateContent request to one model.
func (c *Client) generateOnce(ctx context.Context, model, prompt string) (string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.attemptTimeout)
	defer cancel()

	payload := generateRequest{
		Contents: []contentBlock{{Parts: []contentPart{{Text: prompt}}}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.BaseURL, model, c.APIKey)
	req, err := http.NewRequestWithContext(attemptCtx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("model not found (404)")
	}
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if genResp.Error != nil {
		return "", fmt.Errorf("api error %d: %s", genResp.Error.Code, genResp.Error.Message)
	}

	if len(genResp.Candidates) > 0 {
		cand := genResp.Candidates[0]
		if cand.Content != nil && len(cand.Content.Parts) > 0 && cand.Content.Parts[0].Text != "" {
			return strings.TrimSpace(cand.Content.Parts[0].Text), nil
		}
	}

	return "", fmt.Errorf("no text in response")
}
