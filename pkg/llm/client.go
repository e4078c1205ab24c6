// Package llm provides the text generation backend for the assistant:
// an OpenAI-compatible chat completion client, plus an offline
// generator used when no backend is configured.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"minerops/pkg/assistant"
	"minerops/pkg/config"
	"minerops/pkg/logger"
)

const defaultModel = "meta-llama/llama-3.1-8b-instruct"

// defaultMaxTokens caps generated output when no bound is configured.
const defaultMaxTokens = 1536

// Client calls an OpenAI-compatible chat completion endpoint. One
// generation call is bounded by the configured timeout.
type Client struct {
	cfg        config.LLMConfig
	httpClient *http.Client
}

// NewClient creates a generation client from configuration.
func NewClient(cfg config.LLMConfig) *Client {
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

// NewGenerator returns the configured backend, or the offline generator
// when no base URL is set.
func NewGenerator(cfg config.LLMConfig) assistant.Generator {
	if cfg.BaseURL == "" {
		logger.Infof("llm: no backend configured, using offline generator")
		return NewOfflineGenerator()
	}
	return NewClient(cfg)
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate sends one chat completion request and returns the answer
// text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	payload := chatRequest{
		Model:       c.cfg.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: 0.7,
		MaxTokens:   c.cfg.MaxTokens,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/v1/chat/completions", bytes.NewBuffer(data))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("llm API error (status %d): %s", resp.StatusCode, string(body))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("llm API returned no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}
