package generator

import (
	"context"
	"fmt"
	"os"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// OpenAIProvider implements the Provider interface on top of the
// OpenAI chat completions API.
type OpenAIProvider struct {
	client      *openai.LLM
	model       string
	temperature float32
	maxTokens   int32
}

// NewOpenAIProvider creates an OpenAI provider using OPENAI_API_KEY.
func NewOpenAIProvider(model string) (*OpenAIProvider, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}

	client, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenAI client: %w", err)
	}

	return &OpenAIProvider{
		client:      client,
		model:       model,
		temperature: 0.7,
		maxTokens:   2000,
	}, nil
}

// Complete implements the Provider interface
func (p *OpenAIProvider) Complete(ctx context.Context, messages []Message) (string, error) {
	return completeWithLangchain(ctx, p.client, p.model, p.temperature, p.maxTokens, messages)
}

// SetTemperature sets the sampling temperature
func (p *OpenAIProvider) SetTemperature(temp float32) {
	p.temperature = temp
}

// SetMaxTokens sets the completion token limit
func (p *OpenAIProvider) SetMaxTokens(tokens int32) {
	p.maxTokens = tokens
}

// GitHubModelsProvider implements the Provider interface for GitHub
// Models, which exposes an OpenAI-compatible API.
type GitHubModelsProvider struct {
	client      *openai.LLM
	model       string
	temperature float32
	maxTokens   int32
}

// NewGitHubModelsProvider creates a new GitHub Models provider
func NewGitHubModelsProvider(model string) (*GitHubModelsProvider, error) {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("GITHUB_TOKEN environment variable is required for GitHub Models")
	}

	client, err := openai.New(
		openai.WithToken(token),
		openai.WithBaseURL("https://models.inference.ai.azure.com"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub Models client: %w", err)
	}

	return &GitHubModelsProvider{
		client:      client,
		model:       model,
		temperature: 0.7,
		maxTokens:   2000,
	}, nil
}

// Complete implements the Provider interface
func (p *GitHubModelsProvider) Complete(ctx context.Context, messages []Message) (string, error) {
	return completeWithLangchain(ctx, p.client, p.model, p.temperature, p.maxTokens, messages)
}

// SetTemperature sets the sampling temperature
func (p *GitHubModelsProvider) SetTemperature(temp float32) {
	p.temperature = temp
}

// SetMaxTokens sets the completion token limit
func (p *GitHubModelsProvider) SetMaxTokens(tokens int32) {
	p.maxTokens = tokens
}

// completeWithLangchain maps our messages onto langchaingo content and
// returns the first choice.
func completeWithLangchain(ctx context.Context, client *openai.LLM, model string, temperature float32, maxTokens int32, messages []Message) (string, error) {
	content := make([]llms.MessageContent, len(messages))
	for i, msg := range messages {
		var msgType llms.ChatMessageType
		switch msg.Role {
		case "system":
			msgType = llms.ChatMessageTypeSystem
		case "assistant":
			msgType = llms.ChatMessageTypeAI
		default:
			msgType = llms.ChatMessageTypeHuman
		}
		content[i] = llms.TextParts(msgType, msg.Content)
	}

	response, err := client.GenerateContent(ctx, content,
		llms.WithModel(model),
		llms.WithTemperature(float64(temperature)),
		llms.WithMaxTokens(int(maxTokens)),
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate completion: %w", err)
	}

	if response == nil || len(response.Choices) == 0 {
		return "", fmt.Errorf("empty response from provider")
	}

	return response.Choices[0].Content, nil
}
