package llm

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNoProvider is returned when no generation provider is configured
	ErrNoProvider = errors.New("no LLM provider configured")

	// ErrEmptyResponse is returned when a provider answers with no text
	ErrEmptyResponse = errors.New("empty response from LLM provider")
)

// systemPrompt frames every generation request
const systemPrompt = "Sen Türkiye Yüzyılı Maarif Modeli'ne hakim, deneyimli bir okul öncesi eğitim uzmanısın. Yanıtlarını Türkçe ve istenen formatta ver."

// Generator is the opaque text-generation capability used by the planner
type Generator interface {
	Generate(ctx context.Context, prompt string, jsonMode bool) (string, error)
}

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Generate sends one prompt and returns the model text
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// GenerateRequest contains the input for one generation call
type GenerateRequest struct {
	// Prompt is the full user prompt
	Prompt string

	// JSONMode asks the provider for a single JSON object
	JSONMode bool

	// Model overrides the configured model
	Model string

	// MaxTokens limits the response length
	MaxTokens int

	Temperature float64
	TopP        float64
}

// GenerateResponse contains the raw model output
type GenerateResponse struct {
	// Text is the generated text, trimmed
	Text string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int

	// Truncated is set when the provider stopped at the token limit
	Truncated bool
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout bounds a single request
	Timeout time.Duration

	// MaxTokens for response generation
	MaxTokens int

	Temperature float64
	TopP        float64

	// Handles is the number of concurrent request-scoped provider handles
	Handles int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:    "", // Disabled by default
		Timeout:     120 * time.Second,
		MaxTokens:   4096,
		Temperature: 0.7,
		TopP:        0.9,
		Handles:     4,
	}
}

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return 120 * time.Second
	}
	return c.Timeout
}

// resolve fills request fields left empty from the provider config
func (c Config) resolve(req GenerateRequest, defaultModel string) GenerateRequest {
	if req.Model == "" {
		req.Model = c.Model
	}
	if req.Model == "" {
		req.Model = defaultModel
	}
	if req.MaxTokens == 0 {
		req.MaxTokens = c.MaxTokens
	}
	if req.MaxTokens == 0 {
		req.MaxTokens = 4096
	}
	if req.Temperature == 0 {
		req.Temperature = c.Temperature
	}
	if req.TopP == 0 {
		req.TopP = c.TopP
	}
	return req
}
