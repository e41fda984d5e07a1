package respond

import (
	"github.com/gin-gonic/gin"

	"studybyte-backend/internal/shared/telemetry"
)

// Error sends the standard error body {"error": message, "code": code} with
// any details merged in at the top level, e.g. supported_formats.
func Error(c *gin.Context, status int, code, message string, details map[string]any) {
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	telemetry.Error("http.error", fields)

	body := make(gin.H, len(details)+2)
	for k, v := range details {
		body[k] = v
	}
	body["error"] = message
	body["code"] = code
	c.AbortWithStatusJSON(status, body)
}
