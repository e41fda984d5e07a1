package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"studybyte-backend/internal/bootstrap"
	"studybyte-backend/internal/shared/config"
	"studybyte-backend/internal/shared/server"
	"studybyte-backend/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}

	addr := server.Addr(cfg.Port)
	telemetry.Info("server.start", map[string]any{
		"addr":     addr,
		"env":      cfg.Env,
		"provider": cfg.LLMProvider,
	})

	if err := app.Router.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
