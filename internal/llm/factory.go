package llm

import (
	"fmt"
	"strings"
)

// NewProvider creates a completion provider based on configuration
func NewProvider(config Config) (Provider, error) {
	provider := strings.ToLower(config.Provider)

	switch provider {
	case "openai":
		return NewOpenAIProvider(config)

	case "anthropic", "claude":
		return NewAnthropicProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	case "":
		return nil, fmt.Errorf("no completion provider configured (set llm.provider to openai, anthropic or ollama)")

	default:
		return nil, fmt.Errorf("unknown completion provider: %s (supported: openai, anthropic, ollama)", config.Provider)
	}
}
