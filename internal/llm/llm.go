package llm

import (
	"context"
	"errors"
)

// Client abstracts generative model providers.
type Client interface {
	Generate(ctx context.Context, prompt string, params Params) (string, error)
}

// Params are the sampling settings sent with a prompt. Zero values are left
// to the provider default.
type Params struct {
	Temperature     float32
	TopP            float32
	TopK            float32
	MaxOutputTokens int32
}

// Source tells which branch produced a feature result.
type Source string

const (
	SourceAI       Source = "ai"
	SourceFallback Source = "fallback"
)

// AIPowered reports whether the result came from the model.
func (s Source) AIPowered() bool {
	return s == SourceAI
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("LLM provider not configured")

// ErrEmptyResponse is returned when a provider answers without text.
var ErrEmptyResponse = errors.New("LLM returned an empty response")

// PlaceholderClient stands in when no provider key is set. Every feature
// then uses its local fallback.
type PlaceholderClient struct{}

// Generate returns ErrNotConfigured.
func (PlaceholderClient) Generate(context.Context, string, Params) (string, error) {
	return "", ErrNotConfigured
}

// Available reports whether c can reach a real provider.
func Available(c Client) bool {
	if c == nil {
		return false
	}
	switch c.(type) {
	case PlaceholderClient, *PlaceholderClient:
		return false
	}
	return true
}
