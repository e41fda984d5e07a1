package server

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"studybyte-backend/internal/chat"
	"studybyte-backend/internal/notes"
	"studybyte-backend/internal/services/health"
	"studybyte-backend/internal/shared/config"
	"studybyte-backend/internal/shared/metrics"
	"studybyte-backend/internal/shared/server/middleware"
	"studybyte-backend/internal/summaries"
)

// Rate limit groups. Uploads get a tighter bucket than JSON endpoints.
const (
	rateGroupDefault = "DEFAULT"
	rateGroupUpload  = "UPLOAD"
)

var uploadRoutes = map[string]bool{
	"/api/process-video": true,
	"/api/process-pdf":   true,
}

// RouterDeps carries the handlers mounted on the engine.
type RouterDeps struct {
	Config      config.Config
	Chat        *chat.Handler
	Summaries   *summaries.Handler
	Notes       *notes.Handler
	Health      *health.Handler
	RateLimiter *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.RateLimit(rateLimitConfig(cfg, deps.RateLimiter)),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	if deps.Health != nil {
		deps.Health.RegisterRoutes(api)
	}
	if deps.Chat != nil {
		deps.Chat.RegisterRoutes(api)
	}
	if deps.Summaries != nil {
		deps.Summaries.RegisterRoutes(api)
	}
	if deps.Notes != nil {
		deps.Notes.RegisterRoutes(api)
	}

	mountStatic(r, cfg.StaticDir)
	return r
}

func rateLimitConfig(cfg config.Config, limiter *middleware.RateLimiter) middleware.RateLimitConfig {
	uploadRate := cfg.RateLimitRPS / 5
	uploadBurst := cfg.RateLimitBurst / 4
	if uploadBurst < 1 {
		uploadBurst = 1
	}
	return middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			rateGroupDefault: {Rate: cfg.RateLimitRPS, Burst: cfg.RateLimitBurst},
			rateGroupUpload:  {Rate: uploadRate, Burst: uploadBurst},
		},
		DefaultGroup: rateGroupDefault,
		GroupFor: func(c *gin.Context) string {
			if uploadRoutes[c.Request.URL.Path] {
				return rateGroupUpload
			}
			return rateGroupDefault
		},
		Limiter: limiter,
	}
}

// mountStatic serves the bundled frontend when dir holds one.
func mountStatic(r *gin.Engine, dir string) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return
	}
	index := filepath.Join(dir, "index.html")
	if _, err := os.Stat(index); err == nil {
		r.StaticFile("/", index)
	}
	r.Static("/static", dir)
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
