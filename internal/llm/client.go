// Package llm is a minimal client for OpenAI-compatible chat completion
// APIs. One request per chat turn, no retries, no streaming.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	ErrAPIKeyRequired = errors.New("api key is required")
	ErrModelRequired  = errors.New("model is required")
)

const (
	// Fixed sampling temperature and output cap for every turn. The cap
	// doubles as an implicit latency bound on the provider call.
	completionTemperature = 0.8
	completionMaxTokens   = 180

	defaultBaseURL = "https://api.openai.com/v1"
	defaultTimeout = 30 * time.Second
)

// Message is a single chat message in provider wire format.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ClientConfig configures a completion client.
type ClientConfig struct {
	BaseURL string
	Model   string
	APIKey  string
}

// Client issues chat completion requests.
type Client struct {
	baseURL string
	model   string
	apiKey  string
	client  *http.Client
}

// NewClient builds a completion client. A nil httpClient gets a default
// with a 30s timeout so a hung provider can never stall a turn
// indefinitely.
func NewClient(cfg ClientConfig, httpClient *http.Client) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, ErrAPIKeyRequired
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		return nil, ErrModelRequired
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		apiKey:  apiKey,
		client:  httpClient,
	}, nil
}

type completionRequest struct {
	Model       string    `json:"model"`
	Temperature float64   `json:"temperature"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends the messages and returns the trimmed completion text.
// An empty string with a nil error means the provider answered but
// produced nothing usable.
func (c *Client) Complete(ctx context.Context, messages []Message) (string, error) {
	body, err := json.Marshal(completionRequest{
		Model:       c.model,
		Temperature: completionTemperature,
		Messages:    messages,
		MaxTokens:   completionMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal completion payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("completion request failed: status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var payload completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}
	if len(payload.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(payload.Choices[0].Message.Content), nil
}
