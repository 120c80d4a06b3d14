package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Port         string
	APIAuthToken string
	DatabaseURL  string // empty: in-memory store

	LLMProvider     string // "ollama", "openai", "anthropic", "gemini", "bedrock"
	OllamaURL       string
	OllamaModel     string
	OpenAIAPIKey    string
	OpenAIModel     string
	AnthropicAPIKey string
	AnthropicModel  string
	GeminiAPIKey    string
	GeminiModel     string
	BedrockRegion   string
	BedrockModel    string

	// Working-set cap for top-themes and theme-health aggregation
	AnalyticsRecentWindow int
}

// LoadConfig loads configuration from the environment, with .env support
func LoadConfig() *Config {
	if err := godotenv.Load(); err == nil {
		log.Printf("Loaded configuration from .env")
	}

	return &Config{
		Port:         getEnv("PORT", "8080"),
		APIAuthToken: getEnv("API_AUTH_TOKEN", ""),
		DatabaseURL:  getEnv("DATABASE_URL", ""),

		LLMProvider:     getEnv("LLM_PROVIDER", "ollama"),
		OllamaURL:       getEnv("OLLAMA_URL", "http://localhost:11434"),
		OllamaModel:     getEnv("OLLAMA_MODEL", "llama3"),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:     getEnv("OPENAI_MODEL", "gpt-4-turbo-preview"),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:  getEnv("ANTHROPIC_MODEL", "claude-3-5-sonnet-20241022"),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-1.5-pro"),
		BedrockRegion:   getEnv("BEDROCK_REGION", "us-east-1"),
		BedrockModel:    getEnv("BEDROCK_MODEL", "anthropic.claude-3-5-sonnet-20241022-v2:0"),

		AnalyticsRecentWindow: getEnvInt("ANALYTICS_RECENT_WINDOW", 100),
	}
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an int environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
