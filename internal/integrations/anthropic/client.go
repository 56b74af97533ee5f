package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rogerjeasy/bav-roger/internal/domain"
	"github.com/rogerjeasy/bav-roger/internal/integrations/upstream"
)

const (
	// DefaultModel is the Claude model served behind the "claude" entry in
	// the model table.
	DefaultModel = "claude-3-opus-20240229"

	anthropicVersion = "2023-06-01"
	maxOutputTokens  = 1024

	systemPrompt = "You are an AI assistant for Roger Jeasy. Answer questions based on his profile and experience."
)

// messagesRequest is the minimal request shape for the Messages endpoint.
type messagesRequest struct {
	Model     string                 `json:"model"`
	MaxTokens int                    `json:"max_tokens"`
	System    string                 `json:"system,omitempty"`
	Messages  []domain.PromptMessage `json:"messages"`
}

// messagesResponse is the minimal response shape returned by the Messages endpoint.
type messagesResponse struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Role    string `json:"role"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// Client is a focused Anthropic Messages API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	apiKey     string
	model      string
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSpace(baseURL)
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithModel(model string) Option {
	return func(c *Client) {
		c.model = strings.TrimSpace(model)
	}
}

// NewClient creates a Client pinned to DefaultModel unless overridden.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("anthropic: api key must not be empty")
	}
	c := &Client{
		baseURL:    "https://api.anthropic.com/v1",
		httpClient: &http.Client{Timeout: upstream.DefaultTimeout},
		apiKey:     apiKey,
		model:      DefaultModel,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.model == "" {
		return nil, errors.New("anthropic: model must not be empty")
	}
	return c, nil
}

func messagesURL(baseURL string) string {
	base := strings.TrimRight(baseURL, "/")
	if base == "" {
		base = "https://api.anthropic.com/v1"
	}
	if strings.HasSuffix(base, "/v1") {
		return base + "/messages"
	}
	return base + "/v1/messages"
}

// Generate sends text as a single user-role message under the fixed system
// prompt and returns the first text-typed content block, or an empty string
// if the first block is not text.
func (c *Client) Generate(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(messagesRequest{
		Model:     c.model,
		MaxTokens: maxOutputTokens,
		System:    systemPrompt,
		Messages:  []domain.PromptMessage{{Role: "user", Content: text}},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic: marshal request: %w", err)
	}

	url := messagesURL(c.baseURL)

	req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if reqErr != nil {
		return "", fmt.Errorf("anthropic: create request: %w", reqErr)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	raw, err := upstream.DoJSON(c.httpClient, req, url)
	if err != nil {
		return "", fmt.Errorf("anthropic: request failed: %w", err)
	}

	var payload messagesResponse
	if decErr := json.Unmarshal(raw, &payload); decErr != nil {
		return "", fmt.Errorf("anthropic: decode response: %w", decErr)
	}
	if len(payload.Content) == 0 {
		return "", errors.New("anthropic: no content blocks in response")
	}
	if payload.Content[0].Type != "text" {
		return "", nil
	}
	return payload.Content[0].Text, nil
}
