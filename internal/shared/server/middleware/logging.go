package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"studybyte-backend/internal/shared/metrics"
	"studybyte-backend/internal/shared/telemetry"
)

// FeatureKey and SourceKey are set by handlers so the request log shows which
// feature ran and whether the model answered.
const (
	FeatureKey = "feature"
	SourceKey  = "source"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)
		metrics.ObserveRequestDurationMs(float64(latency.Microseconds()) / 1000.0)

		feature, _ := c.Get(FeatureKey)
		source, _ := c.Get(SourceKey)

		telemetry.Info("request.complete", map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"feature":     feature,
			"source":      source,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		})
	}
}
