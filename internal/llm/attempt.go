package llm

import (
	"context"
	"strings"

	"studybyte-backend/internal/shared/metrics"
	"studybyte-backend/internal/shared/telemetry"
)

// Attempt runs one model call for feature. It reports ok=false, after logging
// the cause, when the provider is missing, fails, or answers with blank text;
// callers then take their fallback branch.
func Attempt(ctx context.Context, client Client, feature, prompt string, params Params) (string, bool) {
	if !Available(client) {
		return "", false
	}
	metrics.IncLLMCall()

	text, err := client.Generate(ctx, prompt, params)
	if err == nil && strings.TrimSpace(text) == "" {
		err = ErrEmptyResponse
	}
	if err != nil {
		metrics.IncLLMFailure()
		telemetry.Warn("llm.fallback", map[string]any{
			"feature": feature,
			"error":   err.Error(),
		})
		return "", false
	}
	return strings.TrimSpace(text), true
}
