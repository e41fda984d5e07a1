package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"studybyte-backend/internal/llm"
)

// DefaultBaseURL is the public OpenAI endpoint. Any compatible server works.
const DefaultBaseURL = "https://api.openai.com/v1"

// Client implements llm.Client against an OpenAI-compatible chat completions
// endpoint.
type Client struct {
	model string
	http  *resty.Client
}

// NewClient constructs a new OpenAI-compatible client.
func NewClient(apiKey, baseURL, model string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for OpenAI")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required: %w", llm.ErrNotConfigured)
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	http := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetAuthToken(apiKey).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return &Client{model: model, http: http}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature *float32      `json:"temperature,omitempty"`
	TopP        *float32      `json:"top_p,omitempty"`
	MaxTokens   int32         `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type errorResponse struct {
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Generate sends prompt as a single user message. top_k has no equivalent in
// this API and is ignored.
func (c *Client) Generate(ctx context.Context, prompt string, params llm.Params) (string, error) {
	reqBody := chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	}
	if params.MaxOutputTokens > 0 {
		reqBody.MaxTokens = params.MaxOutputTokens
	}
	if !isGPT5(c.model) {
		if params.Temperature > 0 {
			reqBody.Temperature = &params.Temperature
		}
		if params.TopP > 0 {
			reqBody.TopP = &params.TopP
		}
	}

	var parsed chatResponse
	var apiErr errorResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(reqBody).
		SetResult(&parsed).
		SetError(&apiErr).
		Post("/chat/completions")
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return "", fmt.Errorf("openai request timeout: %w", err)
		}
		return "", fmt.Errorf("openai request: %w", err)
	}
	if resp.IsError() {
		if apiErr.Error != nil {
			return "", fmt.Errorf("openai http status %d: %s (%s)", resp.StatusCode(), apiErr.Error.Message, apiErr.Error.Type)
		}
		return "", fmt.Errorf("openai http status %d: %s", resp.StatusCode(), strings.TrimSpace(resp.String()))
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("openai response missing choices")
	}
	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", llm.ErrEmptyResponse
	}
	return content, nil
}

// isGPT5 matches models that only accept the default sampling settings.
func isGPT5(model string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(model)), "gpt-5")
}
