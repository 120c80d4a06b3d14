package app

import (
	"log"

	"feedbackpulse/internal/config"
	"feedbackpulse/internal/pipeline"
	"feedbackpulse/pkg/analytics"
	"feedbackpulse/pkg/classifier"
	"feedbackpulse/pkg/insights"
	"feedbackpulse/pkg/llm"
	"feedbackpulse/pkg/store"
)

// App holds all application dependencies
type App struct {
	Config    *config.Config
	Store     store.Store
	Provider  llm.Provider
	Pipeline  *pipeline.Pipeline
	Analytics *analytics.Engine
	Insights  *insights.Service
}

// New initializes a new application with all dependencies
func New() (*App, error) {
	// Load configuration
	cfg := config.LoadConfig()

	// Initialize LLM provider based on configuration
	factory := llm.NewFactory(llm.Config{
		Provider:        cfg.LLMProvider,
		OllamaURL:       cfg.OllamaURL,
		OllamaModel:     cfg.OllamaModel,
		OpenAIAPIKey:    cfg.OpenAIAPIKey,
		OpenAIModel:     cfg.OpenAIModel,
		AnthropicAPIKey: cfg.AnthropicAPIKey,
		AnthropicModel:  cfg.AnthropicModel,
		GeminiAPIKey:    cfg.GeminiAPIKey,
		GeminiModel:     cfg.GeminiModel,
		BedrockRegion:   cfg.BedrockRegion,
		BedrockModel:    cfg.BedrockModel,
	})
	provider, err := factory.CreateProvider()
	if err != nil {
		return nil, err
	}
	log.Printf("Using LLM provider: %s", provider.Name())

	// Initialize feedback store
	var st store.Store
	if cfg.DatabaseURL != "" {
		st, err = store.NewPostgresStore(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		log.Printf("Feedback store: PostgreSQL")
	} else {
		st = store.NewMemoryStore()
		log.Printf("Feedback store: in-memory (set DATABASE_URL for persistence)")
	}

	// Wire the engine
	cls := classifier.New(provider)
	pipe := pipeline.New(cls, st)
	engine := analytics.NewEngine(st, cfg.AnalyticsRecentWindow)
	ins := insights.New(st, provider)

	return &App{
		Config:    cfg,
		Store:     st,
		Provider:  provider,
		Pipeline:  pipe,
		Analytics: engine,
		Insights:  ins,
	}, nil
}

// LogStartupInfo logs application startup information
func (a *App) LogStartupInfo() {
	log.Printf("Starting FeedbackPulse on port %s", a.Config.Port)
	log.Printf("LLM Provider: %s", a.Provider.Name())
	log.Printf("Theme aggregation window: %d most recent items", a.Config.AnalyticsRecentWindow)

	if a.Config.APIAuthToken != "" {
		log.Printf("API authentication: enabled (Bearer token required)")
	} else {
		log.Printf("API authentication: disabled (WARNING: anyone can submit feedback)")
	}
}
