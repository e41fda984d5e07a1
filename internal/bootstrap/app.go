package bootstrap

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"studybyte-backend/internal/chat"
	"studybyte-backend/internal/extract"
	"studybyte-backend/internal/llm"
	"studybyte-backend/internal/llm/gemini"
	"studybyte-backend/internal/llm/openai"
	"studybyte-backend/internal/nlp"
	"studybyte-backend/internal/notes"
	"studybyte-backend/internal/services/health"
	"studybyte-backend/internal/shared/config"
	"studybyte-backend/internal/shared/server"
	"studybyte-backend/internal/shared/storage/scratch"
	"studybyte-backend/internal/shared/telemetry"
	"studybyte-backend/internal/summaries"
)

const (
	defaultUploadDir   = "uploads"
	defaultMaxUploadMB = 200
)

// App holds shared dependencies.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	LLM              llm.Client
	Uploads          *scratch.Store
	ChatService      *chat.Service
	SummariesService *summaries.Service
	NotesService     *notes.Service
	HealthService    *health.Service
	ChatHandler      *chat.Handler
	SummariesHandler *summaries.Handler
	NotesHandler     *notes.Handler
	HealthHandler    *health.Handler
}

// Option overrides a dependency, mostly for tests.
type Option func(*options)

type options struct {
	llm       llm.Client
	extractor notes.Extractor
}

// WithLLM replaces the provider chosen from configuration.
func WithLLM(c llm.Client) Option {
	return func(o *options) { o.llm = c }
}

// WithExtractor replaces the PDF text extractor.
func WithExtractor(e notes.Extractor) Option {
	return func(o *options) { o.extractor = e }
}

// Build wires services, handlers and the router from cfg.
func Build(cfg config.Config, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	cfg = withDefaults(cfg)
	h := cfg.Heuristics

	client := o.llm
	if client == nil {
		client = buildLLM(context.Background(), cfg)
	}
	extractor := o.extractor
	if extractor == nil {
		extractor = extract.PDF{}
	}

	prompts := llm.Prompts{Truncate: buildTruncator(cfg, client)}
	params := llm.Params{
		Temperature:     h.Generation.Temperature,
		TopP:            h.Generation.TopP,
		TopK:            h.Generation.TopK,
		MaxOutputTokens: h.Generation.MaxOutputTokens,
	}
	sentimentParams := llm.Params{
		Temperature:     h.Generation.SentimentTemperature,
		MaxOutputTokens: h.Generation.SentimentMaxTokens,
	}
	keyTerms := nlp.KeyTermExtractor{
		MinLen:     h.KeyTerms.MinLen,
		MaxLen:     h.KeyTerms.MaxLen,
		Candidates: h.KeyTerms.Candidates,
		MaxTerms:   h.KeyTerms.MaxTerms,
		MinCount:   h.KeyTerms.MinCount,
	}
	classifier := nlp.DefaultClassifier()
	classifier.StressKeywords = h.Sentiment.StressKeywords
	classifier.StressPenalty = h.Sentiment.StressPenalty
	classifier.PositiveThreshold = h.Sentiment.PositiveThreshold
	classifier.NegativeThreshold = h.Sentiment.NegativeThreshold

	maxUpload := cfg.MaxUploadMB << 20
	uploads := scratch.New(cfg.UploadDir, maxUpload)

	app := &App{
		Config:  cfg,
		LLM:     client,
		Uploads: uploads,
		ChatService: &chat.Service{
			LLM:             client,
			Prompts:         prompts,
			Params:          params,
			SentimentParams: sentimentParams,
			Classifier:      classifier,
			Now:             time.Now,
		},
		SummariesService: &summaries.Service{
			LLM:     client,
			Prompts: prompts,
			Params:  params,
			Summarizer: nlp.Summarizer{
				MinChars:     h.Summary.MinChars,
				MaxSentences: h.Summary.MaxSentences,
				Bounds:       nlp.Bounds{Min: h.Summary.SentenceMin},
			},
		},
		NotesService: &notes.Service{
			Extractor: extractor,
			KeyTerms:  keyTerms,
			Options: notes.Options{
				PDFMinChars:       h.Notes.PDFMinChars,
				TextMinChars:      h.Notes.TextMinChars,
				LeadSentences:     h.Notes.LeadSentences,
				PDFSummaryCap:     h.Notes.PDFSummaryCap,
				TextSummaryCap:    h.Notes.TextSummaryCap,
				KeyPoints:         h.Notes.KeyPoints,
				ShortSummaryChars: h.Notes.ShortSummaryChars,
				CharsPerPage:      h.Notes.CharsPerPage,
				Sentences:         nlp.Bounds{Min: h.Notes.SentenceMin, Max: h.Notes.SentenceMax},
			},
		},
		HealthService: health.NewService(llm.Available(client)),
	}

	app.ChatHandler = chat.NewHandler(app.ChatService)
	app.SummariesHandler = summaries.NewHandler(app.SummariesService, uploads, maxUpload)
	app.NotesHandler = notes.NewHandler(app.NotesService, uploads, maxUpload)
	app.HealthHandler = health.NewHandler(app.HealthService)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:    cfg,
		Chat:      app.ChatHandler,
		Summaries: app.SummariesHandler,
		Notes:     app.NotesHandler,
		Health:    app.HealthHandler,
	})
	return app, nil
}

func withDefaults(cfg config.Config) config.Config {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.UploadDir) == "" {
		cfg.UploadDir = defaultUploadDir
	}
	if cfg.MaxUploadMB <= 0 {
		cfg.MaxUploadMB = defaultMaxUploadMB
	}
	if cfg.Heuristics.Summary.MaxSentences == 0 {
		cfg.Heuristics = config.DefaultHeuristics()
	} else if err := cfg.Heuristics.Validate(); err != nil {
		telemetry.Warn("bootstrap.heuristics_invalid", map[string]any{"err": err.Error()})
		cfg.Heuristics = config.DefaultHeuristics()
	}
	return cfg
}

// buildLLM picks the provider. Anything short of a working client falls back
// to the placeholder so every feature still answers locally.
func buildLLM(ctx context.Context, cfg config.Config) llm.Client {
	timeout := time.Duration(cfg.LLMTimeoutSeconds) * time.Second
	var (
		client llm.Client
		err    error
	)
	switch cfg.LLMProvider {
	case "none":
		telemetry.Info("bootstrap.llm_disabled", nil)
		return llm.PlaceholderClient{}
	case "openai":
		client, err = openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.ModelName(), timeout)
	default:
		client, err = gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.ModelName(), timeout)
	}
	if err != nil {
		telemetry.Warn("bootstrap.llm_unavailable", map[string]any{
			"provider": cfg.LLMProvider,
			"err":      err.Error(),
		})
		return llm.PlaceholderClient{}
	}
	telemetry.Info("bootstrap.llm_ready", map[string]any{
		"provider": cfg.LLMProvider,
		"model":    cfg.ModelName(),
	})
	return client
}

// buildTruncator loads the token encoding only when prompts will actually be
// sent.
func buildTruncator(cfg config.Config, client llm.Client) llm.TruncateFunc {
	if !llm.Available(client) || cfg.LLMMaxInputTokens <= 0 {
		return nil
	}
	truncate, err := llm.NewTokenTruncator(cfg.LLMMaxInputTokens)
	if err != nil {
		telemetry.Warn("bootstrap.token_encoding_unavailable", map[string]any{"err": err.Error()})
	}
	return truncate
}
