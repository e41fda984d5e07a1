package llm

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

const tokenEncoding = "cl100k_base"

// approxCharsPerToken sizes the rune cap used when no encoding is available.
const approxCharsPerToken = 4

// NewTokenTruncator caps input at maxTokens tokens of the cl100k encoding.
// Loading the encoding may need the network; on failure the error is
// returned together with a rune-based cap so callers can still proceed.
func NewTokenTruncator(maxTokens int) (TruncateFunc, error) {
	if maxTokens <= 0 {
		return func(s string) string { return s }, nil
	}
	enc, err := tiktoken.GetEncoding(tokenEncoding)
	if err != nil {
		return RuneTruncator(maxTokens * approxCharsPerToken), fmt.Errorf("load %s encoding: %w", tokenEncoding, err)
	}
	return func(s string) string {
		tokens := enc.Encode(s, nil, nil)
		if len(tokens) <= maxTokens {
			return s
		}
		return enc.Decode(tokens[:maxTokens])
	}, nil
}

// RuneTruncator caps input at limit characters.
func RuneTruncator(limit int) TruncateFunc {
	return func(s string) string {
		runes := []rune(s)
		if limit <= 0 || len(runes) <= limit {
			return s
		}
		return string(runes[:limit])
	}
}
