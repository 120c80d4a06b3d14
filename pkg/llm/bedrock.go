package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

// BedrockProvider implements the Provider interface for AWS Bedrock
type BedrockProvider struct {
	client *bedrockruntime.Client
	model  string
	region string
}

// NewBedrockProvider creates a new AWS Bedrock provider
func NewBedrockProvider(region, model string) (*BedrockProvider, error) {
	if region == "" {
		region = "us-east-1" // Default region
	}
	if model == "" {
		model = "anthropic.claude-3-5-sonnet-20241022-v2:0" // Default model
	}

	// Load AWS credentials from environment/IAM role
	cfg, err := config.LoadDefaultConfig(context.Background(), config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := bedrockruntime.NewFromConfig(cfg)

	return &BedrockProvider{
		client: client,
		model:  model,
		region: region,
	}, nil
}

// Name returns the provider name
func (p *BedrockProvider) Name() string {
	return fmt.Sprintf("AWS Bedrock (%s)", p.model)
}

// Bedrock request/response structures (using Claude's format on Bedrock)
type bedrockClaudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type bedrockClaudeRequest struct {
	Messages         []bedrockClaudeMessage `json:"messages"`
	MaxTokens        int                    `json:"max_tokens"`
	Temperature      float64                `json:"temperature,omitempty"`
	AnthropicVersion string                 `json:"anthropic_version"`
}

type bedrockClaudeContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type bedrockClaudeResponse struct {
	ID      string                      `json:"id"`
	Type    string                      `json:"type"`
	Role    string                      `json:"role"`
	Content []bedrockClaudeContentBlock `json:"content"`
}

// Complete invokes the model and returns the concatenated text content.
func (p *BedrockProvider) Complete(ctx context.Context, prompt string) (string, error) {
	reqBody := bedrockClaudeRequest{
		Messages: []bedrockClaudeMessage{
			{Role: "user", Content: prompt},
		},
		MaxTokens:        4096,
		Temperature:      0.0,
		AnthropicVersion: "bedrock-2023-05-31",
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := p.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(p.model),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        jsonData,
	})
	if err != nil {
		return "", fmt.Errorf("failed to call Bedrock API: %w", err)
	}

	var bedrockResp bedrockClaudeResponse
	if err := json.Unmarshal(resp.Body, &bedrockResp); err != nil {
		return "", fmt.Errorf("failed to decode Bedrock response: %w", err)
	}

	if len(bedrockResp.Content) == 0 {
		return "", fmt.Errorf("Bedrock returned no content")
	}

	var full strings.Builder
	for _, block := range bedrockResp.Content {
		if block.Type == "text" {
			full.WriteString(block.Text)
		}
	}

	return full.String(), nil
}
