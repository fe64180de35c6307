package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/okrenov/samforge/internal/model"
)

// Provider defines the interface for completion providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete sends one system+user prompt pair and returns generated text.
	// When req.Schema is set, providers that support strict structured output
	// enforce it server-side; others append the schema to the instructions.
	Complete(ctx context.Context, req Request) (*Response, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// Request is the single call shape every provider implements
type Request struct {
	// System fixes the model's role
	System string

	// User carries the task instructions and source material
	User string

	// Schema optionally constrains the output to a JSON structure
	Schema *OutputSchema

	// MaxTokens limits the response length (0 = provider default)
	MaxTokens int

	// Temperature controls sampling (0 = provider default of 0.4)
	Temperature float32
}

// OutputSchema names a strict JSON output contract
type OutputSchema struct {
	Name   string
	Schema json.RawMessage
}

// Response contains the provider's output
type Response struct {
	Text       string
	Model      string
	TokensUsed int
}

// TransportError marks transport/auth failures, as opposed to the provider
// returning unusable content. Callers retry these once at reduced budget.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransport reports whether the error chain contains a transport failure
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// Config holds completion provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests, seconds
	Timeout int

	// MaxTokens default for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "",
		Timeout:   60,
		MaxTokens: 4000,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(mc model.LLMConfig) Config {
	return Config{
		Provider:   mc.Provider,
		Model:      mc.Model,
		APIKey:     mc.APIKey,
		BaseURL:    mc.BaseURL,
		Timeout:    mc.Timeout,
		MaxTokens:  mc.MaxTokens,
		HTTPProxy:  mc.HTTPProxy,
		HTTPSProxy: mc.HTTPSProxy,
		NoProxy:    mc.NoProxy,
	}
}

// schemaInstruction renders a schema block for providers without server-side
// structured output enforcement
func schemaInstruction(schema *OutputSchema) string {
	if schema == nil {
		return ""
	}
	return fmt.Sprintf("\n\nRespond with a single JSON object conforming exactly to this schema (no prose, no code fences):\n%s", string(schema.Schema))
}
