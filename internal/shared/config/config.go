package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration.
type Config struct {
	Port              string
	Env               string
	CORSAllowOrigin   []string
	UploadDir         string
	MaxUploadMB       int64
	StaticDir         string
	LLMProvider       string
	LLMModel          string
	GeminiAPIKey      string
	OpenAIAPIKey      string
	OpenAIBaseURL     string
	LLMTimeoutSeconds int
	LLMMaxInputTokens int
	RateLimitRPS      float64
	RateLimitBurst    int
	HeuristicsFile    string
	Heuristics        Heuristics
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	cfg := Config{
		Port:              getEnv("PORT", "5000"),
		Env:               normalizeEnv(getEnv("ENV", "dev")),
		CORSAllowOrigin:   splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "*")),
		UploadDir:         getEnv("UPLOAD_DIR", "uploads"),
		MaxUploadMB:       int64(getEnvInt("MAX_UPLOAD_MB", 200)),
		StaticDir:         getEnv("STATIC_DIR", "static"),
		LLMProvider:       normalizeProvider(getEnv("LLM_PROVIDER", "gemini")),
		LLMModel:          getEnv("LLM_MODEL", ""),
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		LLMTimeoutSeconds: getEnvInt("LLM_TIMEOUT_SECONDS", 30),
		LLMMaxInputTokens: getEnvInt("LLM_MAX_INPUT_TOKENS", 6000),
		RateLimitRPS:      getEnvFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst:    getEnvInt("RATE_LIMIT_BURST", 20),
		HeuristicsFile:    getEnv("HEURISTICS_FILE", ""),
	}

	heuristics, err := LoadHeuristics(cfg.HeuristicsFile)
	if err != nil {
		log.Printf("config: heuristics file %q ignored: %v", cfg.HeuristicsFile, err)
		heuristics = DefaultHeuristics()
	}
	cfg.Heuristics = heuristics

	return cfg
}

// ModelName returns the configured model or the provider default.
func (c Config) ModelName() string {
	if m := strings.TrimSpace(c.LLMModel); m != "" {
		return m
	}
	switch c.LLMProvider {
	case "openai":
		return "gpt-4o-mini"
	default:
		return "gemini-1.5-flash"
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func getEnvFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil || parsed < 0 {
		return def
	}
	return parsed
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "openai":
		return "openai"
	case "none", "off", "fallback":
		return "none"
	default:
		return "gemini"
	}
}
