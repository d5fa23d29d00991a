// Package generator wraps hosted LLM chat-completion providers behind a
// small Provider interface and turns their JSON output into typed
// recipes, waste-reduction tips, and ingredient substitutions.
package generator

import (
	"context"
	"fmt"
)

// Message represents a chat message
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Provider interface for LLM providers
type Provider interface {
	Complete(ctx context.Context, messages []Message) (string, error)
	SetTemperature(temp float32)
	SetMaxTokens(tokens int32)
}

// NewProvider creates a provider by name. Supported providers are
// "openai", "github_models", and "azure".
func NewProvider(name, model string) (Provider, error) {
	switch name {
	case "openai", "":
		return NewOpenAIProvider(model)
	case "github_models":
		return NewGitHubModelsProvider(model)
	case "azure":
		return NewAzureOpenAIProvider()
	default:
		return nil, fmt.Errorf("unsupported provider: %s", name)
	}
}
