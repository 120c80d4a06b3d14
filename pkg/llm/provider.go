package llm

import "context"

// Provider defines the interface for LLM providers (Ollama, OpenAI, Claude,
// Gemini, Bedrock). Both the feedback classifier and the insights layer talk
// to the model through this single completion call.
type Provider interface {
	// Complete sends a prompt and returns the model's full text response.
	Complete(ctx context.Context, prompt string) (string, error)

	// Name returns the provider name (for logging)
	Name() string
}

// Config holds common configuration for LLM providers
type Config struct {
	Provider string // "ollama", "openai", "anthropic", "gemini", "bedrock"

	// Ollama-specific
	OllamaURL   string
	OllamaModel string

	// OpenAI-specific
	OpenAIAPIKey string
	OpenAIModel  string // e.g., "gpt-4", "gpt-4-turbo", "gpt-3.5-turbo"

	// Anthropic-specific
	AnthropicAPIKey string
	AnthropicModel  string // e.g., "claude-3-5-sonnet-20241022"

	// Gemini-specific
	GeminiAPIKey string
	GeminiModel  string // e.g., "gemini-1.5-pro"

	// AWS Bedrock-specific
	BedrockRegion string // e.g., "us-east-1", "us-west-2"
	BedrockModel  string // e.g., "anthropic.claude-3-5-sonnet-20241022-v2:0"
}
